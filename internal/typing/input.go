package typing

// InputClass restricts which key presses reach a session.
type InputClass uint8

const (
	// BasicInput accepts ASCII letters and , - . : ;
	BasicInput InputClass = iota
	// RichInput additionally accepts double and single quotes.
	RichInput
)

// Accepts reports whether ch belongs to the class.
func (c InputClass) Accepts(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		return true
	}
	switch ch {
	case ',', '-', '.', ':', ';':
		return true
	case '"', '\'':
		return c == RichInput
	}
	return false
}
