package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/optimode/emailschema/internal/dnscache"
	"github.com/optimode/emailschema/internal/parse"
	"github.com/optimode/emailschema/types"
)

// Engine validates and normalizes email addresses.
// It is safe for concurrent use.
type Engine struct {
	dns    *DNSChecker
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	dns        DNSConfig
	lookup     LookupMXFunc
	lookupHost LookupHostFunc
	logger     *slog.Logger
}

// WithDNSConfig overrides the deliverability lookup configuration.
// Zero fields keep their defaults.
func WithDNSConfig(cfg DNSConfig) EngineOption {
	return func(c *engineConfig) {
		def := DefaultDNSConfig()
		if cfg.Timeout == 0 {
			cfg.Timeout = def.Timeout
		}
		if cfg.CacheTTL == 0 {
			cfg.CacheTTL = def.CacheTTL
		}
		c.dns = cfg
	}
}

// WithLookup replaces the cached MX resolver, mainly for tests.
func WithLookup(fn LookupMXFunc) EngineOption {
	return func(c *engineConfig) {
		if fn != nil {
			c.lookup = fn
		}
	}
}

// WithHostLookup replaces the A/AAAA resolver used by FallbackToA.
func WithHostLookup(fn LookupHostFunc) EngineOption {
	return func(c *engineConfig) {
		if fn != nil {
			c.lookupHost = fn
		}
	}
}

// WithLogger sets the logger for deliverability diagnostics.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewEngine creates an Engine. MX lookups go through a shared TTL cache
// unless WithLookup is given; no lookup happens unless an address is
// validated with DeliverableAddress set.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := &engineConfig{
		dns:    DefaultDNSConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	lookup := cfg.lookup
	if lookup == nil {
		lookup = dnscache.New(cfg.dns.Timeout, cfg.dns.CacheTTL).LookupMX
	}

	dns := NewDNSChecker(cfg.dns, lookup)
	dns.logger = cfg.logger
	if cfg.lookupHost != nil {
		dns.lookupHost = cfg.lookupHost
	}

	return &Engine{dns: dns, logger: cfg.logger}
}

// ValidateEmail checks email against the grammar and the policy in opts.
// On failure the error is a *Error.
func (e *Engine) ValidateEmail(email string, opts types.Options) (types.ValidatedEmail, error) {
	return e.ValidateEmailContext(context.Background(), email, opts)
}

// ValidateEmailContext is ValidateEmail with a context bounding the
// deliverability lookup.
func (e *Engine) ValidateEmailContext(ctx context.Context, email string, opts types.Options) (types.ValidatedEmail, error) {
	parsed := parse.NewEmail(email)

	if parsed.Raw == "" {
		return types.ValidatedEmail{}, fail("An email address cannot be empty.")
	}
	if !utf8.ValidString(email) {
		return types.ValidatedEmail{}, fail("The email address is not valid UTF-8.")
	}
	if !parsed.Valid {
		return types.ValidatedEmail{}, fail("An email address must have an @-sign.")
	}

	local, reason := validateLocal(parsed, opts)
	if reason != "" {
		return types.ValidatedEmail{}, fail(reason)
	}

	domain, reason := validateDomain(parsed.Domain, opts)
	if reason != "" {
		return types.ValidatedEmail{}, fail(reason)
	}

	// Length checks (RFC 5321)
	if n := len(local.normalized) + 1 + len(domain.ascii); n > maxAddressLength {
		return types.ValidatedEmail{}, fail(fmt.Sprintf("The email address is too long (%d characters too many).", n-maxAddressLength))
	}

	result := types.ValidatedEmail{
		Original:      email,
		Normalized:    local.normalized + "@" + domain.unicode,
		LocalPart:     local.normalized,
		Domain:        domain.unicode,
		ASCIIDomain:   domain.ascii,
		DomainAddress: domain.addr,
		SMTPUTF8:      local.smtputf8,
	}
	if !local.smtputf8 {
		result.ASCIIEmail = local.normalized + "@" + domain.ascii
	}

	if opts.DeliverableAddress && !domain.addr.IsValid() {
		mxHost, reason := e.dns.Deliverable(ctx, domain.ascii, domain.unicode)
		if reason != "" {
			return types.ValidatedEmail{}, fail(reason)
		}
		result.MXHost = mxHost
	}

	return result, nil
}

func fail(msg string) error {
	return &Error{Message: msg}
}
