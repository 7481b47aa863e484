package jsonstream

// Colorizer carries the ANSI codes Writer uses to colorize output when one
// is attached, distinguishing keys, strings, numbers, and the bool/null
// literals. A nil *Colorizer (the default) means no color codes are
// emitted at all.
type Colorizer struct {
	KeyColorCode      []byte
	StringColorCode   []byte
	NumberColorCode   []byte
	BoolNullColorCode []byte
	ResetCode         []byte
}

func (c *Colorizer) colorFor(kind TokenKind) []byte {
	switch kind {
	case KindString:
		return c.StringColorCode
	case KindNumber:
		return c.NumberColorCode
	default:
		return c.BoolNullColorCode
	}
}

// printColored sends body through p, wrapped in color/reset codes if c is
// non-nil.
func (c *Colorizer) printColored(p Printer, color, body []byte) {
	if c != nil {
		p.PrintBytes(color)
	}
	p.PrintBytes(body)
	if c != nil {
		p.PrintBytes(c.ResetCode)
	}
}
