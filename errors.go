package emailschema

import "errors"

// ErrNilChecker is returned by Build when WithChecker was given nil.
var ErrNilChecker = errors.New("emailschema: grammar checker is nil")
