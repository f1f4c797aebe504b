package emailschema

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/optimode/emailschema/input"
	"github.com/optimode/emailschema/types"
	"github.com/optimode/emailschema/validation"
)

// GrammarChecker validates and normalizes an email address under a policy.
// The error's message is reported to users verbatim.
// check.Engine is the default implementation.
type GrammarChecker interface {
	ValidateEmail(email string, opts types.Options) (types.ValidatedEmail, error)
}

// Validator validates email addresses for one schema node.
// It is immutable and safe for concurrent use; per-call state lives in the
// validation.State passed to Validate.
type Validator struct {
	strict  bool
	opts    types.Options
	name    string
	checker GrammarChecker
}

// Config is a snapshot of a Validator's configuration.
type Config struct {
	Strict  bool
	Options types.Options
	Name    string
}

// Name returns the name assigned at build time.
func (v *Validator) Name() string {
	return v.name
}

// Config returns a copy of the validator's configuration.
func (v *Validator) Config() Config {
	return Config{Strict: v.strict, Options: v.opts, Name: v.name}
}

// Validate checks a single input value.
//
// Input that is not string-shaped under the effective strictness fails with
// validation.StrType without reaching the grammar checker. A string the
// checker rejects fails with validation.EmailParsing carrying the checker's
// message. On success the state's exactness is lowered to Lax, so a plain
// string validator wins over an email validator in an otherwise tied union.
func (v *Validator) Validate(in any, state *validation.State) (types.ValidatedEmail, error) {
	raw := input.Of(in)
	match, err := raw.ValidateStr(state.StrictOr(v.strict), false)
	if err != nil {
		return types.ValidatedEmail{}, validation.NewError(validation.StrType, raw.Raw())
	}

	email, err := v.checker.ValidateEmail(match.Value, v.opts)
	if err != nil {
		return types.ValidatedEmail{}, validation.NewEmailParsingError(raw.Raw(), err.Error())
	}

	state.FloorExactness(validation.Lax)
	return email, nil
}

// ValidateMany validates multiple inputs concurrently.
// The result order matches the input slice order. Every input gets its own
// validation state with exactness tracking enabled.
func (v *Validator) ValidateMany(ctx context.Context, inputs []any, opts ...ConcurrencyOptions) []Outcome {
	o := ConcurrencyOptions{Workers: 5}
	if len(opts) > 0 {
		o.Strict = opts[0].Strict
		if opts[0].Workers > 0 {
			o.Workers = opts[0].Workers
		}
	}

	results := make([]Outcome, len(inputs))
	for i, in := range inputs {
		results[i] = Outcome{Input: in}
	}

	g := new(errgroup.Group)
	g.SetLimit(o.Workers)

	for i := range inputs {
		if err := ctx.Err(); err != nil {
			// inputs already handed to workers finish normally
			for j := i; j < len(inputs); j++ {
				results[j].Err = err
			}
			break
		}
		i := i // per-iteration copy; go directive is 1.21
		g.Go(func() error {
			stateOpts := []validation.StateOption{validation.WithExactness(validation.Exact)}
			if o.Strict != nil {
				stateOpts = append(stateOpts, validation.WithStrict(*o.Strict))
			}
			st := validation.NewState(stateOpts...)

			email, err := v.Validate(inputs[i], st)
			results[i].Email = email
			results[i].Err = err
			if err == nil {
				results[i].Exactness, _ = st.Exactness()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
