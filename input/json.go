package input

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FromJSON decodes a single JSON value into an Input. JSON strings are exact
// string matches; JSON numbers keep their literal text and follow number
// coercion rules; everything else is not string-shaped.
func FromJSON(data []byte) (Input, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding json input: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decoding json input: trailing data after value")
	}
	return value{v: v}, nil
}
