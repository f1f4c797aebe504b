// Package check contains the email grammar and policy engine used by
// emailschema validators. Engine validates an address under a set of
// types.Options, normalizes it, and optionally verifies that the domain
// accepts email. These types can be used directly, but the recommended
// approach is to build a validator with the github.com/optimode/emailschema
// package, which also maps failures into the validation error vocabulary.
package check
