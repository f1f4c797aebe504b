package schema

// KeyStrict is the schema and ambient key controlling strict coercion.
const KeyStrict = "strict"

// IsStrict resolves the strict policy: the schema's own flag wins, then the
// ambient config's, then false. ambient may be nil.
func IsStrict(s, ambient Dict) (bool, error) {
	if v, ok, err := s.GetBool(KeyStrict); err != nil || ok {
		return v, err
	}
	return ambient.BoolOr(KeyStrict, false)
}
