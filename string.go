package jsonstream

import (
	"unicode/utf8"

	"github.com/corestream/jsonstream/internal/scanner"
)

// scanString consumes a JSON string lexeme up to and including its closing
// quote; the opening quote must already have been consumed by the caller.
// Escapes are decoded eagerly, so a malformed \u sequence or invalid UTF-8
// surfaces at scan time rather than on first use.
func scanString(s *scanner.Scanner, maxValueLength int) (string, error) {
	var scratch []byte
	appendBytes := func(bs ...byte) *scanner.Error {
		if len(scratch)+len(bs) >= maxValueLength {
			return scanner.NewError(s, scanner.ValueTooLong, "string exceeds max value length %d", maxValueLength)
		}
		scratch = append(scratch, bs...)
		return nil
	}

	for {
		b, err := s.Read()
		if err != nil {
			return "", scanner.WrapIOError(s, err)
		}
		switch {
		case b == scanner.EOF:
			return "", scanner.NewError(s, scanner.UnexpectedEOF, "unterminated string")
		case b == '"':
			if !utf8.Valid(scratch) {
				return "", scanner.NewError(s, scanner.InvalidUTF8, "string contains invalid UTF-8")
			}
			return string(scratch), nil
		case b == '\\':
			if perr := scanEscape(s, appendBytes); perr != nil {
				return "", perr
			}
		case scanner.IsCtrl(b):
			return "", scanner.NewError(s, scanner.UnescapedControlCharacter, "unescaped control character 0x%02X", b)
		default:
			if perr := appendBytes(b); perr != nil {
				return "", perr
			}
		}
	}
}

// scanEscape consumes one escape sequence (the backslash has already been
// read) and appends its decoded bytes via appendBytes.
func scanEscape(s *scanner.Scanner, appendBytes func(...byte) *scanner.Error) *scanner.Error {
	e, err := s.Read()
	if err != nil {
		return scanner.WrapIOError(s, err)
	}
	if e == scanner.EOF {
		return scanner.NewError(s, scanner.UnexpectedEOF, "unterminated escape sequence")
	}
	switch e {
	case '"':
		return appendBytes('"')
	case '\\':
		return appendBytes('\\')
	case '/':
		return appendBytes('/')
	case 'b':
		return appendBytes(0x08)
	case 'f':
		return appendBytes(0x0C)
	case 'n':
		return appendBytes('\n')
	case 't':
		return appendBytes('\t')
	case 'r':
		// Deliberately decodes to nothing rather than a literal CR.
		return nil
	case 'u':
		r, perr := scanUnicodeEscape(s)
		if perr != nil {
			return perr
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		return appendBytes(buf[:n]...)
	default:
		return scanner.NewError(s, scanner.InvalidEscapeSequence, "unrecognized escape '\\%c'", e)
	}
}

// scanUnicodeEscape consumes a \uXXXX sequence (the \u has already been
// read) and, if it is a high surrogate, the following \uXXXX low surrogate,
// combining the pair into a single rune per the standard UTF-16 surrogate
// formula.
func scanUnicodeEscape(s *scanner.Scanner) (rune, *scanner.Error) {
	hi, perr := readHexQuad(s)
	if perr != nil {
		return 0, perr
	}
	if hi < 0xD800 || hi > 0xDFFF {
		return rune(hi), nil
	}
	if hi > 0xDBFF {
		return 0, scanner.NewError(s, scanner.InvalidEscapeSequence, "unpaired low surrogate \\u%04x", hi)
	}
	// hi is a high surrogate; it must be followed by \u and a low surrogate.
	b, err := s.Read()
	if err != nil {
		return 0, scanner.WrapIOError(s, err)
	}
	if b != '\\' {
		return 0, scanner.NewError(s, scanner.InvalidEscapeSequence, "unpaired high surrogate \\u%04x", hi)
	}
	b, err = s.Read()
	if err != nil {
		return 0, scanner.WrapIOError(s, err)
	}
	if b != 'u' {
		return 0, scanner.NewError(s, scanner.InvalidEscapeSequence, "unpaired high surrogate \\u%04x", hi)
	}
	lo, perr := readHexQuad(s)
	if perr != nil {
		return 0, perr
	}
	if lo < 0xDC00 || lo > 0xDFFF {
		return 0, scanner.NewError(s, scanner.InvalidEscapeSequence, "invalid low surrogate \\u%04x after high surrogate \\u%04x", lo, hi)
	}
	return 0x10000 + (rune(hi)-0xD800)*0x400 + (rune(lo) - 0xDC00), nil
}

// readHexQuad reads exactly 4 hex digits and returns their value.
func readHexQuad(s *scanner.Scanner) (uint32, *scanner.Error) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, err := s.Read()
		if err != nil {
			return 0, scanner.WrapIOError(s, err)
		}
		if b == scanner.EOF {
			return 0, scanner.NewError(s, scanner.UnexpectedEOF, "unterminated \\u escape")
		}
		d, ok := hexDigit(b)
		if !ok {
			return 0, scanner.NewError(s, scanner.InvalidEscapeSequence, "invalid hex digit %q in \\u escape", b)
		}
		v = v<<4 | uint32(d)
	}
	return v, nil
}

func hexDigit(b byte) (uint32, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint32(b-'A') + 10, true
	default:
		return 0, false
	}
}
