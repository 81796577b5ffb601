package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/hamed0406/healthcheck/internal/health"
)

var _ health.Checker = (*DNSChecker)(nil)

// DNSChecker verifies that a host still resolves to at least one address
// through the OS resolver.
type DNSChecker struct {
	Resolver *net.Resolver
	Host     string
}

func NewDNSChecker(target string) *DNSChecker {
	return &DNSChecker{
		Resolver: &net.Resolver{},
		Host:     extractHost(target),
	}
}

func (d *DNSChecker) Check(ctx context.Context) error {
	host := strings.TrimSpace(d.Host)
	if host == "" {
		return errors.New("empty host")
	}

	ips, err := d.Resolver.LookupIP(ctx, "ip", host)
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) && de.IsNotFound {
			return fmt.Errorf("%s: NXDOMAIN", host)
		}
		return err
	}
	if len(ips) == 0 {
		return fmt.Errorf("%s: no A/AAAA records", host)
	}
	return nil
}

// extractHost pulls the hostname out of a URL-ish string.
func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
