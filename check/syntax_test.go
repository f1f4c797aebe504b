package check_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/emailschema/check"
	"github.com/optimode/emailschema/types"
)

var allowAll = types.Options{
	AllowSMTPUTF8:      true,
	AllowEmptyLocal:    true,
	AllowQuotedLocal:   true,
	AllowDomainLiteral: true,
}

func TestEngine_Syntax(t *testing.T) {
	e := check.NewEngine()

	longDomain := strings.Repeat("a", 63) + "." + strings.Repeat("b", 63) + "." + strings.Repeat("c", 63) + ".com"

	tests := []struct {
		name   string
		email  string
		wantOK bool
	}{
		{"valid simple", "user@example.com", true},
		{"valid with plus", "user+tag@example.com", true},
		{"valid with dots", "first.last@example.com", true},
		{"valid subdomain", "user@mail.example.co.uk", true},
		{"valid atext specials", "a!#$%&'*+/=?^_`{|}~-b@example.com", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"no at sign", "userexample.com", false},
		{"no domain", "user@", false},
		{"no local", "@example.com", false},
		{"space in local", "user name@example.com", false},
		{"double dot local", "user..name@example.com", false},
		{"leading dot local", ".user@example.com", false},
		{"trailing dot local", "user.@example.com", false},
		{"consecutive dots domain", "user@exam..ple.com", false},
		{"trailing dot domain", "user@example.com.", false},
		{"single label domain", "user@localhost", false},
		{"local too long", strings.Repeat("a", 65) + "@example.com", false},
		{"too long total", strings.Repeat("a", 64) + "@" + longDomain, false},
		{"label too long", "user@" + strings.Repeat("a", 64) + ".com", false},
		{"numeric TLD", "user@example.123", false},
		{"label starts with hyphen", "user@-example.com", false},
		{"label ends with hyphen", "user@example-.com", false},
		{"underscore in domain", "user@exa_mple.com", false},

		// IDN (Internationalized Domain Names) need no SMTPUTF8
		{"valid IDN german", "user@münchen.de", true},
		{"valid IDN japanese", "user@例え.jp", true},
		{"valid IDN cyrillic", "user@почта.рф", true},
		{"valid Punycode", "user@xn--mnchen-3ya.de", true},

		// EAI (Email Address Internationalization / RFC 6531) needs SMTPUTF8
		{"EAI chinese local", "用户@example.com", false},
		{"quoted local", `"user name"@example.com`, false},
		{"domain literal", "user@[192.168.0.1]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ValidateEmail(tt.email, types.Options{})
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ce *check.Error
			assert.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Message)
		})
	}
}

func TestEngine_Messages(t *testing.T) {
	e := check.NewEngine()

	tests := []struct {
		email string
		opts  types.Options
		want  string
	}{
		{"", types.Options{}, "An email address cannot be empty."},
		{"userexample.com", types.Options{}, "An email address must have an @-sign."},
		{"@example.com", types.Options{}, "There must be something before the @-sign."},
		{"user@", types.Options{}, "There must be something after the @-sign."},
		{"user..name@example.com", types.Options{}, "An email address cannot have two periods in a row."},
		{"用户@example.com", types.Options{}, "Internationalized characters before the @-sign are not supported: '用'."},
		{`"a b"@example.com`, types.Options{}, "Quoting the part before the @-sign is not allowed here."},
		{"user@[127.0.0.1]", types.Options{}, "A bracketed IP address after the @-sign is not allowed here."},
		{"us(er@example.com", types.Options{}, "The email address contains invalid characters before the @-sign: '('."},
		{strings.Repeat("a", 66) + "@example.com", types.Options{}, "The email address is too long before the @-sign (2 characters too many)."},
		{"us\xffer@example.com", types.Options{AllowSMTPUTF8: true}, "The email address is not valid UTF-8."},
		{"\"a\xfeb c\"@example.com", types.Options{AllowSMTPUTF8: true, AllowQuotedLocal: true}, "The email address is not valid UTF-8."},
		{"user@ex\xffample.com", types.Options{AllowSMTPUTF8: true}, "The email address is not valid UTF-8."},
	}

	for _, tt := range tests {
		_, err := e.ValidateEmail(tt.email, tt.opts)
		require.Error(t, err, tt.email)
		assert.Equal(t, tt.want, err.Error(), tt.email)
	}
}

func TestEngine_Normalization(t *testing.T) {
	e := check.NewEngine()

	tests := []struct {
		name       string
		email      string
		opts       types.Options
		normalized string
		ascii      string
	}{
		{"lowercases domain only", "User@EXAMPLE.COM", types.Options{}, "User@example.com", "User@example.com"},
		{"trims whitespace", "  user@example.com\n", types.Options{}, "user@example.com", "user@example.com"},
		{"unicode domain", "user@MÜNCHEN.de", types.Options{}, "user@münchen.de", "user@xn--mnchen-3ya.de"},
		{"punycode domain", "user@xn--mnchen-3ya.de", types.Options{}, "user@münchen.de", "user@xn--mnchen-3ya.de"},
		{"unicode local", "用户@example.com", types.Options{AllowSMTPUTF8: true}, "用户@example.com", ""},
		{"nfc local", "cafe\u0301@example.com", types.Options{AllowSMTPUTF8: true}, "café@example.com", ""},
		{"quoted dot-atom unquoted", `"user"@example.com`, types.Options{AllowQuotedLocal: true}, "user@example.com", "user@example.com"},
		{"quoted with space kept", `"user name"@example.com`, types.Options{AllowQuotedLocal: true}, `"user name"@example.com`, `"user name"@example.com`},
		{"quoted at-sign", `"a@b"@example.com`, types.Options{AllowQuotedLocal: true}, `"a@b"@example.com`, `"a@b"@example.com`},
		{"quoted escapes minimized", `"a\b"@example.com`, types.Options{AllowQuotedLocal: true}, "ab@example.com", "ab@example.com"},
		{"empty local", "@example.com", types.Options{AllowEmptyLocal: true}, "@example.com", "@example.com"},
		{"ipv4 literal", "user@[192.168.0.1]", types.Options{AllowDomainLiteral: true}, "user@[192.168.0.1]", "user@[192.168.0.1]"},
		{"ipv6 literal", "user@[ipv6:2001:0db8:0:0:0:0:0:1]", types.Options{AllowDomainLiteral: true}, "user@[IPv6:2001:db8::1]", "user@[IPv6:2001:db8::1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.ValidateEmail(tt.email, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.normalized, res.Normalized)
			assert.Equal(t, tt.normalized, res.String())
			assert.Equal(t, tt.ascii, res.ASCIIEmail)
			assert.Equal(t, tt.ascii == "", res.SMTPUTF8)
			assert.Equal(t, tt.email, res.Original)
		})
	}
}

func TestEngine_Decomposition(t *testing.T) {
	e := check.NewEngine()

	res, err := e.ValidateEmail("用户@münchen.de", types.Options{AllowSMTPUTF8: true})
	require.NoError(t, err)
	assert.Equal(t, "用户", res.LocalPart)
	assert.Equal(t, "münchen.de", res.Domain)
	assert.Equal(t, "xn--mnchen-3ya.de", res.ASCIIDomain)
	assert.False(t, res.IsDomainLiteral())

	res, err = e.ValidateEmail("user@[10.0.0.1]", types.Options{AllowDomainLiteral: true})
	require.NoError(t, err)
	assert.True(t, res.IsDomainLiteral())
	assert.True(t, res.DomainAddress.Is4())
	assert.Equal(t, "[10.0.0.1]", res.Domain)
}

func TestEngine_DomainLiteralInvalid(t *testing.T) {
	e := check.NewEngine()
	opts := types.Options{AllowDomainLiteral: true}

	for _, email := range []string{
		"user@[300.1.1.1]",
		"user@[example.com]",
		"user@[IPv6:192.168.0.1]",
		"user@[IPv6:fe80::1%eth0]",
		"user@[2001:db8::1]",
	} {
		_, err := e.ValidateEmail(email, opts)
		assert.Error(t, err, email)
	}
}

func TestEngine_FlagToggles(t *testing.T) {
	e := check.NewEngine()

	tests := []struct {
		name  string
		email string
		on    types.Options
	}{
		{"smtputf8", "用户@example.com", types.Options{AllowSMTPUTF8: true}},
		{"smtputf8 quoted", `"ü ser"@example.com`, types.Options{AllowSMTPUTF8: true, AllowQuotedLocal: true}},
		{"empty local", "@example.com", types.Options{AllowEmptyLocal: true}},
		{"quoted local", `"john..doe"@example.com`, types.Options{AllowQuotedLocal: true}},
		{"domain literal", "user@[IPv6:::1]", types.Options{AllowDomainLiteral: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ValidateEmail(tt.email, types.Options{})
			assert.Error(t, err)

			_, err = e.ValidateEmail(tt.email, tt.on)
			assert.NoError(t, err)
		})
	}
}

func TestEngine_QuotedEmptyLocal(t *testing.T) {
	e := check.NewEngine()

	_, err := e.ValidateEmail(`""@example.com`, types.Options{AllowQuotedLocal: true})
	assert.Error(t, err)

	res, err := e.ValidateEmail(`""@example.com`, types.Options{AllowQuotedLocal: true, AllowEmptyLocal: true})
	require.NoError(t, err)
	assert.Equal(t, `""@example.com`, res.Normalized)
}

func TestEngine_Idempotent(t *testing.T) {
	e := check.NewEngine()

	inputs := []string{
		"User@EXAMPLE.COM",
		"user@xn--mnchen-3ya.de",
		"用户@例え.jp",
		"cafe\u0301@example.com",
		`"user"@example.com`,
		`"user name"@example.com`,
		`"a\"b"@example.com`,
		`"a@b"@example.com`,
		"@example.com",
		"user@[IPv6:2001:0db8::0001]",
		"user@[127.0.0.1]",
	}

	for _, in := range inputs {
		first, err := e.ValidateEmail(in, allowAll)
		require.NoError(t, err, in)

		second, err := e.ValidateEmail(first.Normalized, allowAll)
		require.NoError(t, err, first.Normalized)
		assert.Equal(t, first.Normalized, second.Normalized, in)
	}
}
