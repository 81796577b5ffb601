// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	timeout := strings.TrimSpace(os.Getenv("HEALTH_TIMEOUT_MS"))
	interval := strings.TrimSpace(os.Getenv("MONITOR_INTERVAL_MS"))
	critical := strings.TrimSpace(os.Getenv("CRITICAL_URLS"))
	advisory := strings.TrimSpace(os.Getenv("ADVISORY_URLS"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))

	if timeout != "" {
		if ms, err := strconv.Atoi(timeout); err != nil || ms <= 0 {
			fail("HEALTH_TIMEOUT_MS must be a positive integer, got " + timeout)
		} else {
			ok("HEALTH_TIMEOUT_MS=" + timeout)
		}
	} else {
		warn("HEALTH_TIMEOUT_MS empty — default 5000ms will be used.")
	}

	if interval == "" || interval == "0" {
		warn("MONITOR_INTERVAL_MS empty/0 — background monitor disabled, /readyz falls back to on-demand runs.")
	} else if ms, err := strconv.Atoi(interval); err != nil || ms < 0 {
		fail("MONITOR_INTERVAL_MS must be a non-negative integer, got " + interval)
	} else {
		ok("MONITOR_INTERVAL_MS=" + interval)
	}

	// Probe names must be unique across both classes; URL lists use the URL
	// as the name, so a URL in both lists would fail registration at boot.
	seen := map[string]bool{}
	for _, v := range [...]string{critical, advisory} {
		for _, u := range strings.Split(v, ",") {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			if seen[u] {
				fail("duplicate probe URL across CRITICAL_URLS/ADVISORY_URLS: " + u)
			}
			seen[u] = true
		}
	}

	if critical == "" && db == "" {
		warn("no critical probes configured (CRITICAL_URLS and DATABASE_URL both empty) — /healthz will always be 200.")
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — postgres probe disabled.")
	} else {
		ok("DATABASE_URL present")
	}

	if redisAddr == "" {
		warn("REDIS_ADDR empty — redis probe disabled.")
	} else {
		ok("REDIS_ADDR=" + redisAddr)
	}

	ok("preflight passed")
}
