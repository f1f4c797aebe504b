package emailschema

import (
	"github.com/optimode/emailschema/types"
	"github.com/optimode/emailschema/validation"
)

// Outcome is the result of validating one input in ValidateMany.
type Outcome struct {
	Input any
	Email types.ValidatedEmail
	Err   error
	// Exactness is the match exactness. It is only set when Valid().
	Exactness validation.Exactness
}

// Valid reports whether the input validated.
func (o Outcome) Valid() bool {
	return o.Err == nil
}

// Failed returns those outcomes that did not validate.
func Failed(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if !o.Valid() {
			out = append(out, o)
		}
	}
	return out
}
