// Package schema reads declarative validator schemas: key/value dictionaries
// as produced by the schema compiler or loaded from YAML.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dict is a schema or ambient configuration dictionary.
type Dict map[string]any

// GetBool reads a boolean flag. ok is false when the key is absent or null.
// A value of any other type is a schema error.
func (d Dict) GetBool(key string) (value bool, ok bool, err error) {
	raw, found := d[key]
	if !found || raw == nil {
		return false, false, nil
	}
	b, isBool := raw.(bool)
	if !isBool {
		return false, false, &Error{Key: key, Err: fmt.Errorf("%w: expected bool, got %T", ErrInvalidValue, raw)}
	}
	return b, true, nil
}

// GetString reads a string value. ok is false when the key is absent or null.
func (d Dict) GetString(key string) (value string, ok bool, err error) {
	raw, found := d[key]
	if !found || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, &Error{Key: key, Err: fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, raw)}
	}
	return s, true, nil
}

// BoolOr reads a boolean flag, falling back to def when absent.
func (d Dict) BoolOr(key string, def bool) (bool, error) {
	v, ok, err := d.GetBool(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// ParseYAML decodes a YAML mapping into a Dict.
// An empty document yields an empty Dict.
func ParseYAML(data []byte) (Dict, error) {
	var d Dict
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if d == nil {
		d = Dict{}
	}
	return d, nil
}

// LoadFile reads a YAML schema file.
func LoadFile(path string) (Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ParseYAML(data)
}
