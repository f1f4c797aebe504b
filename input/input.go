// Package input turns heterogeneous values into strings under a strictness
// policy. Validators that need a string call ValidateStr and treat any error
// as a type mismatch.
package input

import (
	"encoding/json"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/optimode/emailschema/validation"
)

// Match is a successful coercion together with how exact it was.
type Match struct {
	Value     string
	Exactness validation.Exactness
}

// Input is a value under validation.
type Input interface {
	// ValidateStr coerces the value to a string. In strict mode only real
	// strings are accepted. Numbers are converted only when coerceNumbers is
	// set and strict is not.
	ValidateStr(strict, coerceNumbers bool) (Match, error)
	// Raw returns the underlying value, used for error reporting.
	Raw() any
}

// Of wraps an arbitrary Go value. An Input is returned unchanged.
func Of(v any) Input {
	if in, ok := v.(Input); ok {
		return in
	}
	return value{v: v}
}

type value struct {
	v any
}

func (x value) Raw() any { return x.v }

func (x value) ValidateStr(strict, coerceNumbers bool) (Match, error) {
	switch v := x.v.(type) {
	case string:
		return Match{Value: v, Exactness: validation.Exact}, nil
	case []byte:
		if strict || !utf8.Valid(v) {
			return Match{}, x.strTypeErr()
		}
		return Match{Value: string(v), Exactness: validation.Lax}, nil
	case json.Number:
		return x.number(string(v), strict, coerceNumbers)
	case nil, bool:
		return Match{}, x.strTypeErr()
	}

	rv := reflect.ValueOf(x.v)
	switch rv.Kind() {
	case reflect.String:
		// named string types, e.g. enums
		if strict {
			return Match{}, x.strTypeErr()
		}
		return Match{Value: rv.String(), Exactness: validation.Lax}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.number(strconv.FormatInt(rv.Int(), 10), strict, coerceNumbers)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return x.number(strconv.FormatUint(rv.Uint(), 10), strict, coerceNumbers)
	case reflect.Float32, reflect.Float64:
		return x.number(strconv.FormatFloat(rv.Float(), 'f', -1, 64), strict, coerceNumbers)
	default:
		return Match{}, x.strTypeErr()
	}
}

func (x value) number(s string, strict, coerceNumbers bool) (Match, error) {
	if strict || !coerceNumbers {
		return Match{}, x.strTypeErr()
	}
	return Match{Value: s, Exactness: validation.Lax}, nil
}

func (x value) strTypeErr() error {
	return validation.NewError(validation.StrType, x.v)
}
