package parse

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Email is the raw decomposition of an address at its separating @-sign.
// The check package validates and normalizes the parts.
type Email struct {
	Raw    string // the original, trimmed input
	Local  string // the part before @, quotes included when Quoted
	Domain string // the part after @, unmodified
	Quoted bool   // Local is a quoted-string
	Valid  bool   // false if Raw has no @-sign to split on
}

// NewEmail splits the given address. A leading quoted-string is scanned to
// its closing quote first, so an @-sign inside quotes does not split;
// otherwise the last @-sign separates local and domain parts.
func NewEmail(raw string) Email {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, `"`) {
		if end, ok := quotedEnd(raw); ok && end < len(raw) && raw[end] == '@' {
			return Email{
				Raw:    raw,
				Local:  raw[:end],
				Domain: raw[end+1:],
				Quoted: true,
				Valid:  true,
			}
		}
	}

	atIdx := strings.LastIndex(raw, "@")
	if atIdx < 0 {
		return Email{Raw: raw, Valid: false}
	}
	return Email{
		Raw:    raw,
		Local:  raw[:atIdx],
		Domain: raw[atIdx+1:],
		Valid:  true,
	}
}

// quotedEnd returns the index just past the closing quote of the
// quoted-string starting at s[0].
func quotedEnd(s string) (int, bool) {
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return i + 1, true
		}
	}
	return 0, false
}

// Unquote returns the content of a quoted-string with quoted-pairs resolved.
// ok is false when s is not a well-formed quoted-string.
func Unquote(s string) (content string, ok bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	inner := s[1 : len(s)-1]

	var b strings.Builder
	escaped := false
	for _, r := range inner {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return "", false
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return "", false
	}
	return b.String(), true
}

// Quote renders content as a quoted-string, escaping only quotes and
// backslashes.
func Quote(content string) string {
	var b strings.Builder
	b.Grow(len(content) + 2)
	b.WriteByte('"')
	for _, r := range content {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// IsASCII reports whether s contains only ASCII characters.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// ConvertDomain converts a domain to both ASCII/Punycode and Unicode forms.
// Returns (ascii, unicode, ok). ok is false if the domain contains
// non-ASCII characters that fail IDNA2008 validation.
func ConvertDomain(domain string) (ascii, unicode string, ok bool) {
	domain = norm.NFC.String(strings.ToLower(domain))

	if !IsASCII(domain) {
		// Internationalized domain: convert to Punycode via IDNA2008
		a, err := idna.Lookup.ToASCII(domain)
		if err != nil {
			return "", "", false
		}
		// derive the display form from the ASCII one so that the
		// result is stable when fed back in
		u, err := idna.Display.ToUnicode(a)
		if err != nil {
			u = domain
		}
		return a, u, true
	}

	// Pure ASCII domain: try to get Unicode display form
	// (handles existing Punycode like xn--mnchen-3ya.de → münchen.de)
	u, err := idna.Display.ToUnicode(domain)
	if err != nil {
		u = domain
	}
	return domain, u, true
}
