package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"
)

// LookupMXFunc resolves the MX records of an ASCII domain.
type LookupMXFunc func(ctx context.Context, domain string) ([]*net.MX, error)

// LookupHostFunc resolves the addresses of an ASCII host name.
type LookupHostFunc func(ctx context.Context, host string) ([]string, error)

// DNSConfig is the deliverability lookup configuration.
type DNSConfig struct {
	// Timeout is the maximum time for a single lookup. Default: 5s
	Timeout time.Duration
	// CacheTTL is how long MX answers (and failures) are reused. Default: 5m
	CacheTTL time.Duration
	// FallbackToA accepts domains without MX records that resolve to an address.
	// Default: false (strict MX requirement)
	FallbackToA bool
}

// DefaultDNSConfig returns the default deliverability lookup configuration.
func DefaultDNSConfig() DNSConfig {
	return DNSConfig{
		Timeout:  5 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}

// DNSChecker verifies that a domain accepts email.
type DNSChecker struct {
	cfg        DNSConfig
	lookup     LookupMXFunc
	lookupHost LookupHostFunc
	logger     *slog.Logger
}

// NewDNSChecker creates a checker using the given MX lookup.
func NewDNSChecker(cfg DNSConfig, lookup LookupMXFunc) *DNSChecker {
	r := &net.Resolver{}
	return &DNSChecker{
		cfg:        cfg,
		lookup:     lookup,
		lookupHost: r.LookupHost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Deliverable looks up the MX records of asciiDomain and returns the primary
// MX host. Returns error text, or "" if the domain accepts email.
func (c *DNSChecker) Deliverable(ctx context.Context, asciiDomain, displayDomain string) (string, string) {
	mxRecords, err := c.lookup(ctx, asciiDomain)
	if err != nil {
		c.logger.DebugContext(ctx, "mx lookup failed",
			slog.String("domain", asciiDomain),
			slog.Any("error", err),
		)
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			if host, ok := c.fallback(ctx, asciiDomain); ok {
				return host, ""
			}
			return "", "The domain name " + displayDomain + " does not exist."
		}
		return "", fmt.Sprintf("The domain name %s could not be checked for deliverability: %v", displayDomain, err)
	}

	// a single "." record is a null MX (RFC 7505)
	if len(mxRecords) == 1 && (mxRecords[0].Host == "." || mxRecords[0].Host == "") {
		return "", "The domain name " + displayDomain + " does not accept email."
	}

	if len(mxRecords) == 0 {
		if host, ok := c.fallback(ctx, asciiDomain); ok {
			return host, ""
		}
		return "", "The domain name " + displayDomain + " does not accept email."
	}

	sort.Slice(mxRecords, func(i, j int) bool {
		return mxRecords[i].Pref < mxRecords[j].Pref
	})

	return strings.TrimSuffix(mxRecords[0].Host, "."), ""
}

// fallback tries the A/AAAA records when FallbackToA is enabled.
func (c *DNSChecker) fallback(ctx context.Context, asciiDomain string) (string, bool) {
	if !c.cfg.FallbackToA {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	addrs, err := c.lookupHost(ctx, asciiDomain)
	if err != nil || len(addrs) == 0 {
		return "", false
	}
	return addrs[0], true
}
