package emailschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/emailschema"
	"github.com/optimode/emailschema/schema"
	"github.com/optimode/emailschema/types"
)

func TestBuild_Defaults(t *testing.T) {
	v, err := emailschema.Build(schema.Dict{"type": "email"}, nil)
	require.NoError(t, err)

	cfg := v.Config()
	assert.False(t, cfg.Strict)
	assert.Equal(t, types.Options{}, cfg.Options)
	assert.Equal(t, "email", cfg.Name)
	assert.Equal(t, "email", v.Name())
}

func TestBuild_NilSchema(t *testing.T) {
	v, err := emailschema.Build(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Options{}, v.Config().Options)
}

func TestBuild_ReadsFlags(t *testing.T) {
	tests := []struct {
		key  string
		want types.Options
	}{
		{"allow_smtputf8", types.Options{AllowSMTPUTF8: true}},
		{"allow_empty_local", types.Options{AllowEmptyLocal: true}},
		{"allow_quoted_local", types.Options{AllowQuotedLocal: true}},
		{"allow_domain_literal", types.Options{AllowDomainLiteral: true}},
		{"deliverable_address", types.Options{DeliverableAddress: true}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, err := emailschema.Build(schema.Dict{tt.key: true}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Config().Options)

			v, err = emailschema.Build(schema.Dict{tt.key: false}, nil)
			require.NoError(t, err)
			assert.Equal(t, types.Options{}, v.Config().Options)
		})
	}
}

func TestBuild_StrictResolution(t *testing.T) {
	tests := []struct {
		name    string
		s       schema.Dict
		ambient schema.Dict
		want    bool
	}{
		{"default non-strict", schema.Dict{}, nil, false},
		{"ambient strict", schema.Dict{}, schema.Dict{"strict": true}, true},
		{"schema overrides ambient", schema.Dict{"strict": false}, schema.Dict{"strict": true}, false},
		{"schema strict", schema.Dict{"strict": true}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := emailschema.Build(tt.s, tt.ambient)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Config().Strict)
		})
	}
}

func TestBuild_InvalidFlagType(t *testing.T) {
	for _, key := range []string{
		"strict",
		"allow_smtputf8",
		"allow_empty_local",
		"allow_quoted_local",
		"allow_domain_literal",
		"deliverable_address",
	} {
		t.Run(key, func(t *testing.T) {
			v, err := emailschema.Build(schema.Dict{key: "yes"}, nil)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, schema.ErrInvalidValue)

			var se *schema.Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, key, se.Key)
		})
	}

	_, err := emailschema.Build(schema.Dict{}, schema.Dict{"strict": 1})
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
}

func TestBuilder_WithName(t *testing.T) {
	v, err := emailschema.NewBuilder().WithName("email[contact]").Build(schema.Dict{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "email[contact]", v.Name())
}

func TestBuilder_NilChecker(t *testing.T) {
	_, err := emailschema.NewBuilder().WithChecker(nil).Build(schema.Dict{}, nil)
	assert.ErrorIs(t, err, emailschema.ErrNilChecker)
}

func TestBuilder_IndependentValidators(t *testing.T) {
	b := emailschema.NewBuilder()

	a, err := b.Build(schema.Dict{"allow_smtputf8": true}, nil)
	require.NoError(t, err)
	c, err := b.Build(schema.Dict{}, nil)
	require.NoError(t, err)

	assert.True(t, a.Config().Options.AllowSMTPUTF8)
	assert.False(t, c.Config().Options.AllowSMTPUTF8)
}
