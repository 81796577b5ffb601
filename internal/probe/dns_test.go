package probe

import (
	"context"
	"testing"
)

func TestDNSChecker_EmptyHost(t *testing.T) {
	chk := NewDNSChecker("")
	if err := chk.Check(context.Background()); err == nil {
		t.Fatalf("want failure for empty host")
	}
}

func TestExtractHost(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://example.com/path", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"example.com", "example.com"},
	}
	for _, c := range cases {
		if got := extractHost(c.in); got != c.want {
			t.Fatalf("extractHost(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
