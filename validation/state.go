package validation

// Exactness ranks how closely an input matched a validator.
// Higher values win when several union members accept the same input.
type Exactness int

const (
	Lax Exactness = iota
	Strict
	Exact
)

func (e Exactness) String() string {
	switch e {
	case Lax:
		return "lax"
	case Strict:
		return "strict"
	case Exact:
		return "exact"
	default:
		return "unknown"
	}
}

// State is the mutable context of a single validation call.
// It is not safe for concurrent use: give every call its own State.
type State struct {
	strict    *bool
	exactness Exactness
	tracking  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithStrict overrides the validator's own strict setting for this call.
func WithStrict(strict bool) StateOption {
	return func(s *State) { s.strict = &strict }
}

// WithExactness enables exactness tracking, starting at the given level.
func WithExactness(e Exactness) StateOption {
	return func(s *State) {
		s.exactness = e
		s.tracking = true
	}
}

// NewState creates a State with no strict override and no exactness tracking
// unless options say otherwise.
func NewState(opts ...StateOption) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StrictOr returns the strict override if one is set, otherwise def.
// A nil State has no override.
func (s *State) StrictOr(def bool) bool {
	if s == nil || s.strict == nil {
		return def
	}
	return *s.strict
}

// FloorExactness lowers the tracked exactness to e. It never raises it,
// and does nothing when tracking is off or the State is nil.
func (s *State) FloorExactness(e Exactness) {
	if s == nil || !s.tracking {
		return
	}
	if e < s.exactness {
		s.exactness = e
	}
}

// Exactness returns the tracked exactness and whether tracking is on.
func (s *State) Exactness() (Exactness, bool) {
	if s == nil || !s.tracking {
		return 0, false
	}
	return s.exactness, true
}
