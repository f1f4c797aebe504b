package emailschema

import (
	"time"

	"github.com/optimode/emailschema/check"
)

// DNSOptions configures the deliverability lookups of the default grammar
// engine. It has no effect when a custom checker is set.
type DNSOptions struct {
	// Timeout is the maximum time for MX lookup. Default: 5s
	Timeout time.Duration
	// CacheTTL is how long lookup results are reused. Default: 5m
	CacheTTL time.Duration
	// FallbackToA when true accepts A records when no MX record is found.
	// Default: false (strict MX requirement)
	FallbackToA bool
}

func (o DNSOptions) checkConfig() check.DNSConfig {
	return check.DNSConfig{
		Timeout:     o.Timeout,
		CacheTTL:    o.CacheTTL,
		FallbackToA: o.FallbackToA,
	}
}

// ConcurrencyOptions configures concurrent processing for ValidateMany.
type ConcurrencyOptions struct {
	// Workers is the number of concurrent goroutines. Default: 5
	Workers int
	// Strict, when set, overrides the validator's strict flag for every input.
	Strict *bool
}
