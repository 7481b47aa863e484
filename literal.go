package jsonstream

import (
	"go4.org/mem"

	"github.com/corestream/jsonstream/internal/scanner"
)

// scanLiteral consumes the len(rest) bytes following an already-consumed
// leading letter ('t', 'f', or 'n') and checks them against rest using
// go4.org/mem, avoiding the allocation a byte-slice comparison would cost
// for every scalar true/false/null in a document. Grounded on the literal
// matching in creachadair/jtree's scanner.go.
func scanLiteral(s *scanner.Scanner, rest string) *scanner.Error {
	var buf [4]byte
	n := len(rest)
	for i := 0; i < n; i++ {
		b, err := s.Read()
		if err != nil {
			return scanner.WrapIOError(s, err)
		}
		if b == scanner.EOF {
			return scanner.NewError(s, scanner.UnexpectedEOF, "unterminated literal")
		}
		buf[i] = b
	}
	if !mem.S(rest).Equal(mem.B(buf[:n])) {
		return scanner.NewError(s, scanner.UnexpectedInput, "invalid literal, expected %q", rest)
	}
	return nil
}

func scanTrue(s *scanner.Scanner) *scanner.Error  { return scanLiteral(s, "rue") }
func scanFalse(s *scanner.Scanner) *scanner.Error { return scanLiteral(s, "alse") }
func scanNull(s *scanner.Scanner) *scanner.Error  { return scanLiteral(s, "ull") }
