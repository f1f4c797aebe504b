// Package emailschema is the email leaf validator of a schema-driven
// validation engine. It reads per-schema flags, checks input with an email
// grammar engine, and reports failures in the engine's error vocabulary.
//
// Basic usage:
//
//	v, err := emailschema.Build(schema.Dict{"allow_smtputf8": true}, nil)
//	email, err := v.Validate("user@example.com", validation.NewState())
//
// With a custom grammar checker and a name from the schema compiler:
//
//	v, err := emailschema.NewBuilder().
//	    WithName("email[user.contact]").
//	    WithChecker(myChecker).
//	    Build(s, ambient)
package emailschema

import (
	"github.com/optimode/emailschema/types"
	"github.com/optimode/emailschema/validation"
)

// ExpectedType is the schema type this validator is built for.
const ExpectedType = "email"

// Schema keys read by the builder.
const (
	KeyAllowSMTPUTF8      = "allow_smtputf8"
	KeyAllowEmptyLocal    = "allow_empty_local"
	KeyAllowQuotedLocal   = "allow_quoted_local"
	KeyAllowDomainLiteral = "allow_domain_literal"
	KeyDeliverableAddress = "deliverable_address"
)

// ValidatedEmail is a re-export from the types package so that consumers
// don't need to import the types package directly.
type ValidatedEmail = types.ValidatedEmail

// Options is a re-export.
type Options = types.Options

// Exactness levels re-exported.
const (
	Lax    = validation.Lax
	Strict = validation.Strict
	Exact  = validation.Exact
)
