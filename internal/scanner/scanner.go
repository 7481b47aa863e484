// Package scanner implements the byte-level half of the tokenizer: a
// fixed-capacity buffered reader over an io.Reader, with single-byte
// pushback and a running line counter. It performs no structural or lexical
// interpretation of the bytes it returns.
package scanner

import "io"

// EOF is a byte value that never appears in a UTF-8 encoded stream, used as
// a sentinel return value from Read and Peek instead of forcing every
// caller to special-case io.EOF. A non-nil error from Read/Peek always
// means the underlying source failed, never that it is exhausted.
const EOF byte = 0xFF

const (
	maxConsecutiveEmptyReads = 100
	defaultBufferCapacity    = 1 << 20 // 1 MiB, matches the parser's default Config.BufferCapacity
)

// Scanner is a fixed-capacity buffered byte reader with one byte of
// pushback and a 1-based line counter. It owns its buffer and the
// underlying io.Reader exclusively; it must not be used concurrently.
type Scanner struct {
	source io.Reader
	buf    []byte
	pos    int
	end    int
	line   int // 0-based internally; Line() reports 1-based

	err error // sticky error from the source, surfaced once buffered bytes are exhausted

	canBack       bool // true if the last Read() can be undone by Back()
	backIsEOF     bool // the byte to undo was the EOF sentinel
	backIsNewline bool // the byte to undo was '\n', so Back() must also decrement line
}

// NewScanner returns a Scanner reading from r with the default buffer
// capacity.
func NewScanner(r io.Reader) *Scanner {
	return NewScannerSize(r, defaultBufferCapacity)
}

// NewScannerSize returns a Scanner reading from r with a buffer of the
// given capacity. A capacity as small as 1 is valid.
func NewScannerSize(r io.Reader, capacity int) *Scanner {
	if capacity < 1 {
		capacity = 1
	}
	return &Scanner{
		source: r,
		buf:    make([]byte, capacity),
	}
}

// Line returns the 1-based line number of the byte most recently returned
// by Read or Peek.
func (s *Scanner) Line() int {
	return s.line + 1
}

func (s *Scanner) refill() {
	s.pos = 0
	s.end = 0
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.source.Read(s.buf)
		s.end = n
		if n > 0 {
			if err != nil {
				// The source delivered bytes and an error in the same call;
				// keep the bytes, remember the error for when they run out.
				s.err = err
			}
			return
		}
		if err != nil {
			s.err = err
			return
		}
	}
	s.err = io.ErrNoProgress
}

// errOrEOF reports the sticky source error, or the EOF sentinel with a nil
// error if the source is cleanly exhausted.
func (s *Scanner) errOrEOF() (byte, error) {
	if s.err == io.EOF || s.err == nil {
		return EOF, nil
	}
	return 0, s.err
}

// Read returns the next byte and advances past it. At end of input it
// returns (EOF, nil); a non-nil error means the source failed.
func (s *Scanner) Read() (byte, error) {
	if s.pos >= s.end {
		if s.err != nil {
			return s.errOrEOF()
		}
		s.refill()
	}
	if s.pos < s.end {
		b := s.buf[s.pos]
		s.pos++
		s.canBack = true
		s.backIsEOF = false
		s.backIsNewline = b == '\n'
		if s.backIsNewline {
			s.line++
		}
		return b, nil
	}
	b, err := s.errOrEOF()
	if err == nil {
		s.canBack = true
		s.backIsEOF = true
		s.backIsNewline = false
	}
	return b, err
}

// Peek returns the next byte without consuming it. It never enables Back.
func (s *Scanner) Peek() (byte, error) {
	s.canBack = false
	if s.pos >= s.end {
		if s.err != nil {
			return s.errOrEOF()
		}
		s.refill()
	}
	if s.pos < s.end {
		return s.buf[s.pos], nil
	}
	return s.errOrEOF()
}

// Back undoes the most recent successful Read. It may be called at most
// once per Read, and only before any other Read/Peek/SkipSpace* call.
// Calling it otherwise is a programming error and panics: a correctly
// written scanner never needs more than one byte of pushback, and this
// implementation enforces that limit rather than silently doing the wrong
// thing.
func (s *Scanner) Back() {
	if !s.canBack {
		panic("scanner: Back called without a matching Read")
	}
	s.canBack = false
	if s.backIsEOF {
		return
	}
	s.pos--
	if s.backIsNewline {
		s.line--
	}
}

// SkipSpaceAndPeek advances past JSON whitespace (0x09, 0x0A, 0x0D, 0x20)
// and returns the first non-whitespace byte without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	s.canBack = false
	for {
		for i := s.pos; i < s.end; i++ {
			b := s.buf[i]
			if !isSpace(b) {
				s.line += countNewlines(s.buf[s.pos:i])
				s.pos = i
				return b, nil
			}
		}
		s.line += countNewlines(s.buf[s.pos:s.end])
		s.pos = s.end
		if s.err != nil {
			return s.errOrEOF()
		}
		s.refill()
		if s.pos >= s.end {
			return s.errOrEOF()
		}
	}
}

// SkipSpaceAndRead is SkipSpaceAndPeek followed by consuming the returned
// byte; it also arms Back() for that byte.
func (s *Scanner) SkipSpaceAndRead() (byte, error) {
	b, err := s.SkipSpaceAndPeek()
	if err != nil || b == EOF {
		return b, err
	}
	s.pos++
	s.canBack = true
	s.backIsEOF = false
	s.backIsNewline = b == '\n'
	if s.backIsNewline {
		s.line++
	}
	return b, nil
}

// ReadRaw returns a best-effort snippet of up to n bytes starting at the
// current position, for use in error messages. It never blocks beyond a
// single refill attempt and never fails the parse: if fewer than n bytes
// are available it returns what it has, possibly the empty string.
func (s *Scanner) ReadRaw(n int) string {
	if s.pos >= s.end && s.err == nil {
		s.refill()
	}
	end := s.pos + n
	if end > s.end {
		end = s.end
	}
	if end <= s.pos {
		return ""
	}
	return string(s.buf[s.pos:end])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func countNewlines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
