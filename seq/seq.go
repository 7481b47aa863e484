// Package seq adapts Parser.Read to the standard library's range-over-func
// iteration, for callers who would rather write a for/range loop than a
// manual Read loop. It is a thin pull-to-iterator facade, yielding flat
// tokens rather than tree values since this module never builds a tree.
package seq

import (
	"io"
	"iter"

	"github.com/corestream/jsonstream"
)

// Tokens returns an iterator over p's tokens. Iteration stops cleanly at
// io.EOF; any other error is yielded once, as the second value, and then
// iteration stops. A range loop that wants to detect the difference should
// check the yielded error itself.
func Tokens(p *jsonstream.Parser) iter.Seq2[*jsonstream.Token, error] {
	return func(yield func(*jsonstream.Token, error) bool) {
		for {
			tok, err := p.Read()
			if err != nil {
				if err != io.EOF {
					yield(nil, err)
				}
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}
