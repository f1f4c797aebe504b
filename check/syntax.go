package check

import (
	"fmt"
	"net/netip"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/optimode/emailschema/internal/parse"
	"github.com/optimode/emailschema/types"
)

const (
	maxAddressLength = 254
	maxLocalLength   = 64
	maxDomainLength  = 253
	maxLabelLength   = 63
)

// RFC 5322 atext besides ASCII letters and digits.
const atextSpecial = "!#$%&'*+/=?^_`{|}~-"

// localPart is a validated and normalized local part.
type localPart struct {
	normalized string
	smtputf8   bool
}

// validateLocal validates the local part and returns its normalized form.
// Returns error text, or "" if ok.
func validateLocal(email parse.Email, opts types.Options) (localPart, string) {
	if email.Quoted {
		return validateQuotedLocal(email.Local, opts)
	}

	local := email.Local
	if local == "" {
		if !opts.AllowEmptyLocal {
			return localPart{}, "There must be something before the @-sign."
		}
		return localPart{}, ""
	}

	if err := checkLocalCharacters(local, opts); err != "" {
		return localPart{}, err
	}

	local = norm.NFC.String(local)

	if err := checkDotAtom(local); err != "" {
		return localPart{}, err
	}
	if err := checkLocalLength(local); err != "" {
		return localPart{}, err
	}

	return localPart{normalized: local, smtputf8: !parse.IsASCII(local)}, ""
}

// validateQuotedLocal handles the quoted-string form. The content is
// unquoted when it would be a valid dot-atom on its own.
func validateQuotedLocal(local string, opts types.Options) (localPart, string) {
	if !opts.AllowQuotedLocal {
		return localPart{}, "Quoting the part before the @-sign is not allowed here."
	}

	content, ok := parse.Unquote(local)
	if !ok {
		return localPart{}, "The quoted part before the @-sign is not valid."
	}
	if content == "" && !opts.AllowEmptyLocal {
		return localPart{}, "There must be something before the @-sign."
	}

	for _, ch := range content {
		if ch > 127 {
			if !opts.AllowSMTPUTF8 {
				return localPart{}, "Internationalized characters before the @-sign are not supported: " + quoteRune(ch) + "."
			}
			if !unicode.IsGraphic(ch) || unicode.IsSpace(ch) {
				return localPart{}, "The email address contains unsafe characters before the @-sign: " + quoteRune(ch) + "."
			}
			continue
		}
		// qtext, quoted-pairs and plain spaces are printable ASCII
		if ch < ' ' || ch == 0x7f {
			return localPart{}, "The email address contains invalid characters in quotes before the @-sign: " + quoteRune(ch) + "."
		}
	}

	content = norm.NFC.String(content)

	normalized := parse.Quote(content)
	if content != "" && checkLocalCharacters(content, opts) == "" && checkDotAtom(content) == "" {
		normalized = content
	}
	if err := checkLocalLength(normalized); err != "" {
		return localPart{}, err
	}

	return localPart{normalized: normalized, smtputf8: !parse.IsASCII(content)}, ""
}

// checkLocalCharacters validates unquoted local part characters.
// Supports RFC 5322 ASCII atext and, with SMTPUTF8, RFC 6531 Unicode characters.
func checkLocalCharacters(local string, opts types.Options) string {
	var bad []rune
	for _, ch := range local {
		if ch > 127 {
			if !opts.AllowSMTPUTF8 {
				return "Internationalized characters before the @-sign are not supported: " + quoteRune(ch) + "."
			}
			// RFC 6531: non-ASCII Unicode is allowed except whitespace,
			// control, format and unassigned characters
			if !unicode.IsGraphic(ch) || unicode.IsSpace(ch) {
				return "The email address contains unsafe characters before the @-sign: " + quoteRune(ch) + "."
			}
			continue
		}
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '.' {
			continue
		}
		if !strings.ContainsRune(atextSpecial, ch) {
			bad = append(bad, ch)
		}
	}
	if len(bad) > 0 {
		return "The email address contains invalid characters before the @-sign: " + quoteRunes(bad) + "."
	}
	return ""
}

// checkDotAtom enforces the dot placement rules of a dot-atom.
func checkDotAtom(local string) string {
	if strings.HasPrefix(local, ".") {
		return "An email address cannot start with a period."
	}
	if strings.HasSuffix(local, ".") {
		return "An email address cannot have a period immediately before the @-sign."
	}
	if strings.Contains(local, "..") {
		return "An email address cannot have two periods in a row."
	}
	return ""
}

func checkLocalLength(local string) string {
	if n := len(local); n > maxLocalLength {
		return fmt.Sprintf("The email address is too long before the @-sign (%d characters too many).", n-maxLocalLength)
	}
	return ""
}

// domainPart is a validated and normalized domain part.
type domainPart struct {
	unicode string
	ascii   string
	addr    netip.Addr
}

// validateDomain validates the domain part and returns its normalized forms.
// Returns error text, or "" if ok.
func validateDomain(domain string, opts types.Options) (domainPart, string) {
	if domain == "" {
		return domainPart{}, "There must be something after the @-sign."
	}

	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		return validateDomainLiteral(domain, opts)
	}

	ascii, unicodeDomain, ok := parse.ConvertDomain(domain)
	if !ok {
		return domainPart{}, "The domain name " + domain + " contains invalid characters."
	}

	if len(ascii) > maxDomainLength {
		return domainPart{}, "The email address is too long after the @-sign."
	}

	if strings.HasPrefix(unicodeDomain, ".") {
		return domainPart{}, "An email address cannot have a period immediately after the @-sign."
	}
	if strings.HasSuffix(unicodeDomain, ".") {
		return domainPart{}, "An email address cannot end with a period."
	}

	// label rules are checked on the Unicode form for readable messages
	labels := strings.Split(unicodeDomain, ".")
	if len(labels) < 2 {
		return domainPart{}, "The part after the @-sign is not valid. It should have a period."
	}

	for _, label := range labels {
		if label == "" {
			return domainPart{}, "An email address cannot have two periods in a row."
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return domainPart{}, "An email address cannot have a hyphen immediately after the @-sign or at the start or end of a domain label."
		}
		for _, ch := range label {
			if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && !unicode.IsMark(ch) && ch != '-' {
				return domainPart{}, "The part after the @-sign contains invalid characters: " + quoteRune(ch) + "."
			}
		}
	}
	for _, label := range strings.Split(ascii, ".") {
		if len(label) > maxLabelLength {
			return domainPart{}, "After the @-sign, periods cannot be separated by so many characters."
		}
	}

	// TLD cannot be all digits
	tld := labels[len(labels)-1]
	allDigits := true
	for _, ch := range tld {
		if !unicode.IsDigit(ch) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return domainPart{}, "The part after the @-sign is not valid IPv4 address nor a domain name with a letter in its last label."
	}

	return domainPart{unicode: unicodeDomain, ascii: ascii}, ""
}

// validateDomainLiteral handles [IPv4] and [IPv6:...] domain literals.
func validateDomainLiteral(domain string, opts types.Options) (domainPart, string) {
	if !opts.AllowDomainLiteral {
		return domainPart{}, "A bracketed IP address after the @-sign is not allowed here."
	}

	inner := domain[1 : len(domain)-1]

	if len(inner) >= 5 && strings.EqualFold(inner[:5], "IPv6:") {
		addr, err := netip.ParseAddr(inner[5:])
		if err != nil || !addr.Is6() || addr.Zone() != "" {
			return domainPart{}, "The IPv6 address in brackets after the @-sign is not valid."
		}
		literal := "[IPv6:" + addr.String() + "]"
		return domainPart{unicode: literal, ascii: literal, addr: addr}, ""
	}

	addr, err := netip.ParseAddr(inner)
	if err != nil || !addr.Is4() {
		return domainPart{}, "The part after the @-sign contains invalid characters in brackets."
	}
	literal := "[" + addr.String() + "]"
	return domainPart{unicode: literal, ascii: literal, addr: addr}, ""
}

func quoteRune(ch rune) string {
	if ch == utf8.RuneError || !unicode.IsPrint(ch) {
		return fmt.Sprintf("U+%04X", ch)
	}
	return "'" + string(ch) + "'"
}

func quoteRunes(chs []rune) string {
	seen := make(map[rune]bool, len(chs))
	parts := make([]string, 0, len(chs))
	for _, ch := range chs {
		if seen[ch] {
			continue
		}
		seen[ch] = true
		parts = append(parts, quoteRune(ch))
	}
	return strings.Join(parts, ", ")
}
