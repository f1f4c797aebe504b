package emailschema

import (
	"log/slog"

	"github.com/optimode/emailschema/check"
	"github.com/optimode/emailschema/schema"
)

// Builder collects construction options for a Validator.
// Instantiate with NewBuilder(). A Builder is not safe for concurrent use,
// but the Validators it builds are.
type Builder struct {
	name    string
	checker GrammarChecker
	dns     *DNSOptions
	logger  *slog.Logger
	err     error // configuration error, returned on Build()
}

// NewBuilder creates a Builder that names validators after ExpectedType and
// validates with the default check.Engine.
func NewBuilder() *Builder {
	return &Builder{name: ExpectedType}
}

// WithName sets the validator name, as assigned by the schema compiler.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithChecker replaces the default grammar engine.
func (b *Builder) WithChecker(c GrammarChecker) *Builder {
	if c == nil {
		b.err = ErrNilChecker
		return b
	}
	b.checker = c
	return b
}

// WithDNS configures deliverability lookups of the default grammar engine.
func (b *Builder) WithDNS(opts DNSOptions) *Builder {
	b.dns = &opts
	return b
}

// WithLogger passes a logger to the default grammar engine for
// deliverability diagnostics. Validation itself never logs.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build reads the schema (and the optional ambient config) and returns an
// immutable Validator. A flag holding a non-boolean value is a schema error.
func (b *Builder) Build(s, ambient schema.Dict) (*Validator, error) {
	if b.err != nil {
		return nil, b.err
	}

	strict, err := schema.IsStrict(s, ambient)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		strict:  strict,
		name:    b.name,
		checker: b.checker,
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{KeyAllowSMTPUTF8, &v.opts.AllowSMTPUTF8},
		{KeyAllowEmptyLocal, &v.opts.AllowEmptyLocal},
		{KeyAllowQuotedLocal, &v.opts.AllowQuotedLocal},
		{KeyAllowDomainLiteral, &v.opts.AllowDomainLiteral},
		{KeyDeliverableAddress, &v.opts.DeliverableAddress},
	}
	for _, f := range flags {
		if *f.dst, err = s.BoolOr(f.key, false); err != nil {
			return nil, err
		}
	}

	if v.checker == nil {
		v.checker = b.defaultEngine()
	}
	return v, nil
}

func (b *Builder) defaultEngine() *check.Engine {
	var opts []check.EngineOption
	if b.dns != nil {
		opts = append(opts, check.WithDNSConfig(b.dns.checkConfig()))
	}
	if b.logger != nil {
		opts = append(opts, check.WithLogger(b.logger))
	}
	return check.NewEngine(opts...)
}

// Build is NewBuilder().Build(s, ambient).
func Build(s, ambient schema.Dict) (*Validator, error) {
	return NewBuilder().Build(s, ambient)
}
