package jsonstream

import "math/big"

// decimalPrecisionBits is the working precision used when a Decimal is
// converted to a big.Float for comparison or display. It is generous enough
// that the round trip in spec §8 ("emitted tokens reparse to the same
// sequence") holds for the documents realistic parsers encounter; it is not
// an attempt at unbounded precision.
const decimalPrecisionBits = 200

// Decimal represents an arbitrary-precision JSON number in AllDecimal
// mode. It stores the exact source lexeme, never a normalized form, so
// that re-emitting it through a Writer reproduces the original text
// byte-for-byte (spec §9, "Two number modes").
//
// No decimal library appears anywhere in the reference corpus this module
// was built from, so Decimal is backed by the standard library's
// math/big rather than a third-party decimal type; see DESIGN.md.
type Decimal struct {
	lexeme string
}

// NewDecimal wraps a numeric lexeme as is, without validating it. The
// scanner calls it only after checking the lexeme's grammar; callers can use
// it to build a Decimal to write through a Writer.
func NewDecimal(lexeme string) Decimal {
	return Decimal{lexeme: lexeme}
}

// String returns the exact source lexeme.
func (d Decimal) String() string {
	return d.lexeme
}

// Float64 converts the decimal to the nearest float64, following the same
// "documented, not an error" precision-loss policy as the IntDouble double
// path.
func (d Decimal) Float64() float64 {
	f, _ := d.BigFloat().Float64()
	return f
}

// BigFloat parses the decimal's lexeme into a big.Float at
// decimalPrecisionBits of precision. It panics if the lexeme is not a
// valid decimal literal; that can only happen if a Decimal was constructed
// by hand with a bad string, since the scanner validates the grammar
// before ever building one.
func (d Decimal) BigFloat() *big.Float {
	f, _, err := big.ParseFloat(d.lexeme, 10, decimalPrecisionBits, big.ToNearestEven)
	if err != nil {
		panic("jsonstream: invalid decimal lexeme " + d.lexeme)
	}
	return f
}
