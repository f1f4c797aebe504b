// Package types contains the shared types for emailschema.
// This package does not import anything from other emailschema packages
// to avoid circular imports.
package types

import "net/netip"

// Options is the configuration bundle handed to a grammar checker.
// Every flag defaults to false, which is the most restrictive policy.
type Options struct {
	AllowSMTPUTF8      bool `json:"allowSmtputf8"`
	AllowEmptyLocal    bool `json:"allowEmptyLocal"`
	AllowQuotedLocal   bool `json:"allowQuotedLocal"`
	AllowDomainLiteral bool `json:"allowDomainLiteral"`
	DeliverableAddress bool `json:"deliverableAddress"`
}

// ValidatedEmail is a normalized email address decomposed into its parts.
type ValidatedEmail struct {
	Original      string     `json:"original"`
	Normalized    string     `json:"normalized"`
	LocalPart     string     `json:"localPart"`
	Domain        string     `json:"domain"`
	ASCIIDomain   string     `json:"asciiDomain"`
	DomainAddress netip.Addr `json:"domainAddress,omitzero"`
	ASCIIEmail    string     `json:"asciiEmail,omitempty"`
	SMTPUTF8      bool       `json:"smtputf8"`
	MXHost        string     `json:"mxHost,omitempty"`
}

// String returns the normalized address.
func (e ValidatedEmail) String() string {
	return e.Normalized
}

// IsDomainLiteral reports whether the domain part is a bracketed IP address.
func (e ValidatedEmail) IsDomainLiteral() bool {
	return e.DomainAddress.IsValid()
}
