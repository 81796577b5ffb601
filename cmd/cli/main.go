package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
)

// One-shot health client: GET /healthz, print the report, exit non-zero
// when the service is unavailable. Works as a container HEALTHCHECK.
func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	resp, err := http.Get(api + "/healthz")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(2)
	}
	defer resp.Body.Close()

	var body struct {
		Status   string            `json:"status"`
		Errors   map[string]string `json:"errors"`
		Warnings map[string]string `json:"warnings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintln(os.Stderr, "Bad response body:", err)
		os.Exit(2)
	}

	fmt.Println("Status:", body.Status)
	printMap("errors", body.Errors)
	printMap("warnings", body.Warnings)

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func printMap(label string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println(label + ":")
	for _, n := range names {
		fmt.Printf("  %s: %s\n", n, m[n])
	}
}
