package jsonstream

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/corestream/jsonstream/internal/scanner"
)

// NumberParsing selects how the parser materializes a scanned number
// lexeme into a Number.
type NumberParsing uint8

const (
	// IntDouble produces Number values tagged Int when the lexeme is a
	// bare integer of at most 18 significant digits, and Double
	// otherwise. This is the default.
	IntDouble NumberParsing = iota
	// AllDecimal produces Number values tagged Decimal for every number,
	// preserving the exact source lexeme.
	AllDecimal
)

// NumberKind tags the representation a Number actually holds.
type NumberKind uint8

const (
	NumberInt NumberKind = iota
	NumberDouble
	NumberDecimal
)

// Number is a JSON number in one of three representations, chosen by the
// parser's NumberParsing mode at scan time.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
	d    Decimal
}

// IntNumber constructs a Number holding an exact int64.
func IntNumber(i int64) Number { return Number{kind: NumberInt, i: i} }

// DoubleNumber constructs a Number holding a float64.
func DoubleNumber(f float64) Number { return Number{kind: NumberDouble, f: f} }

// DecimalNumber constructs a Number holding an arbitrary-precision Decimal.
func DecimalNumber(d Decimal) Number { return Number{kind: NumberDecimal, d: d} }

// Kind reports which representation n holds.
func (n Number) Kind() NumberKind { return n.kind }

// Int64 returns n's value and true if n holds an exact int64.
func (n Number) Int64() (int64, bool) {
	if n.kind != NumberInt {
		return 0, false
	}
	return n.i, true
}

// Equal reports whether n and other hold the same representation and
// value. Decimals are compared by their exact lexeme, not numeric value.
func (n Number) Equal(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case NumberInt:
		return n.i == other.i
	case NumberDouble:
		return n.f == other.f
	default:
		return n.d.String() == other.d.String()
	}
}

// Float64 returns n's value as a float64 regardless of representation,
// losing precision for large decimals exactly as the IntDouble double path
// does. This is documented behavior, not an error condition.
func (n Number) Float64() float64 {
	switch n.kind {
	case NumberInt:
		return float64(n.i)
	case NumberDouble:
		return n.f
	default:
		return n.d.Float64()
	}
}

// Decimal returns n's value and true if n holds a Decimal.
func (n Number) Decimal() (Decimal, bool) {
	if n.kind != NumberDecimal {
		return Decimal{}, false
	}
	return n.d, true
}

// String renders n the way it would appear in re-emitted JSON. Decimal
// values reproduce their exact source lexeme; Int and Double are formatted
// canonically via strconv.
func (n Number) String() string {
	switch n.kind {
	case NumberInt:
		return strconv.FormatInt(n.i, 10)
	case NumberDouble:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	default:
		return n.d.String()
	}
}

// scanNumber consumes a JSON number lexeme starting at the current scanner
// position (the leading '-' or digit has been peeked but not read) and
// materializes it per the parser's NumberParsing mode. Grounded on
// encoding/json/decoder.go's ParseNumber/ReadDigits, generalized with
// int64/decimal materialization.
func scanNumber(s *scanner.Scanner, mode NumberParsing, maxValueLength int) (Number, error) {
	var buf []byte
	appendByte := func(b byte) *scanner.Error {
		if len(buf)+1 >= maxValueLength {
			return scanner.NewError(s, scanner.ValueTooLong, "number exceeds max value length %d", maxValueLength)
		}
		buf = append(buf, b)
		return nil
	}
	readByte := func() (byte, *scanner.Error) {
		b, err := s.Read()
		if err != nil {
			return 0, scanner.WrapIOError(s, err)
		}
		return b, nil
	}

	b, perr := readByte()
	if perr != nil {
		return Number{}, perr
	}
	if b == scanner.EOF {
		return Number{}, scanner.NewError(s, scanner.UnexpectedEOF, "expected a number")
	}

	if b == '-' {
		if perr := appendByte(b); perr != nil {
			return Number{}, perr
		}
		if b, perr = readByte(); perr != nil {
			return Number{}, perr
		}
		if b == scanner.EOF {
			return Number{}, scanner.NewError(s, scanner.UnexpectedEOF, "expected digit")
		}
	}

	intDigits := 0
	switch {
	case b == '0':
		if perr := appendByte(b); perr != nil {
			return Number{}, perr
		}
		intDigits = 1
		if b, perr = readByte(); perr != nil {
			return Number{}, perr
		}
		if scanner.IsDigit(b) {
			return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "leading zero in number")
		}
	case b >= '1' && b <= '9':
		for scanner.IsDigit(b) {
			if perr := appendByte(b); perr != nil {
				return Number{}, perr
			}
			intDigits++
			if b, perr = readByte(); perr != nil {
				return Number{}, perr
			}
			if b == scanner.EOF {
				break
			}
		}
	default:
		return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "expected digit, got %q", b)
	}

	isInt := true

	if b == '.' {
		isInt = false
		if perr := appendByte(b); perr != nil {
			return Number{}, perr
		}
		if b, perr = readByte(); perr != nil {
			return Number{}, perr
		}
		fracDigits := 0
		for scanner.IsDigit(b) {
			if perr := appendByte(b); perr != nil {
				return Number{}, perr
			}
			fracDigits++
			if b, perr = readByte(); perr != nil {
				return Number{}, perr
			}
			if b == scanner.EOF {
				break
			}
		}
		if fracDigits == 0 {
			return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "expected digit after '.'")
		}
	}

	if b == 'e' || b == 'E' {
		isInt = false
		if perr := appendByte(b); perr != nil {
			return Number{}, perr
		}
		if b, perr = readByte(); perr != nil {
			return Number{}, perr
		}
		if b == '+' || b == '-' {
			if perr := appendByte(b); perr != nil {
				return Number{}, perr
			}
			if b, perr = readByte(); perr != nil {
				return Number{}, perr
			}
		}
		expDigits := 0
		for scanner.IsDigit(b) {
			if perr := appendByte(b); perr != nil {
				return Number{}, perr
			}
			expDigits++
			if b, perr = readByte(); perr != nil {
				return Number{}, perr
			}
			if b == scanner.EOF {
				break
			}
		}
		if expDigits == 0 {
			return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "expected digit in exponent")
		}
	}

	if b != scanner.EOF {
		s.Back()
	}

	lexeme := string(buf)

	if mode == AllDecimal {
		if _, _, err := big.ParseFloat(lexeme, 10, decimalPrecisionBits, big.ToNearestEven); err != nil {
			return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "invalid decimal literal %q", lexeme)
		}
		return DecimalNumber(NewDecimal(lexeme)), nil
	}

	if isInt && intDigits <= 18 {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return IntNumber(i), nil
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !(errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)) {
			return Number{}, scanner.NewError(s, scanner.UnexpectedInput, "invalid number literal %q", lexeme)
		}
		// ErrRange: the magnitude overflowed float64 and f already holds
		// the correctly-signed ±Inf, which spec §4.2.3 accepts.
	}
	return DoubleNumber(f), nil
}
