package check

// Error is a grammar or policy violation. Message is a complete sentence
// suitable for showing to the person who typed the address.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
