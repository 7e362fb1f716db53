package canvas

// Kind is a pointer interaction category listeners subscribe to.
type Kind int

const (
	Move Kind = iota
	Down
	Up

	kindCount
)

// String returns the short name of the kind.
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "unknown"
}

// Valid reports whether k is one of Move, Down or Up.
func (k Kind) Valid() bool {
	return k >= Move && k < kindCount
}

// ParseKind maps a listener name to its Kind. Both the short names and the
// mouse event names are accepted ("down" and "mousedown" are the same kind).
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "move", "mousemove":
		return Move, true
	case "down", "mousedown":
		return Down, true
	case "up", "mouseup":
		return Up, true
	}
	return 0, false
}

// Kinds lists every valid kind in dispatch order.
func Kinds() []Kind {
	return []Kind{Move, Down, Up}
}
