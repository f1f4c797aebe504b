// Package validation holds the per-call validation state shared between a
// validator and its caller, and the error vocabulary validators report with.
//
// A State carries two things across the call boundary: an optional strictness
// override and an optional exactness accumulator. Union resolvers create one
// State per attempt and read the exactness back to rank successful matches.
//
//	st := validation.NewState(validation.WithExactness(validation.Exact))
//	email, err := v.Validate(raw, st)
//	if err == nil {
//	    level, _ := st.Exactness() // Lax after an email match
//	}
package validation
