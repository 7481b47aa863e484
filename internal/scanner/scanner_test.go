package scanner

import (
	"errors"
	"strings"
	"testing"
)

func strScanner(s string) *Scanner {
	return NewScanner(strings.NewReader(s))
}

func assertRead(t *testing.T, s *Scanner, xb byte, xerr error) {
	b, err := s.Read()
	if b != xb {
		t.Fatalf("Read: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Read: expected err = %v, got %v", xerr, err)
	}
}

func assertPeek(t *testing.T, s *Scanner, xb byte, xerr error) {
	b, err := s.Peek()
	if b != xb {
		t.Fatalf("Peek: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Peek: expected err = %v, got %v", xerr, err)
	}
}

func TestSimple(t *testing.T) {
	s := strScanner("bonjour")
	assertRead(t, s, 'b', nil)
	assertRead(t, s, 'o', nil)
	assertPeek(t, s, 'n', nil)
	assertRead(t, s, 'n', nil)
	s.Back()
	assertRead(t, s, 'n', nil)
	assertRead(t, s, 'j', nil)
	assertRead(t, s, 'o', nil)
	assertRead(t, s, 'u', nil)
	assertRead(t, s, 'r', nil)
	assertRead(t, s, EOF, nil)
	s.Back()
	assertRead(t, s, EOF, nil)
}

func TestLargeInput(t *testing.T) {
	const line = "a very long line of text\n"
	s := NewScannerSize(strings.NewReader(strings.Repeat(line, 100)), 16)
	var acc []byte
	for i := 0; i < len(line)*100; i++ {
		b, err := s.Read()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		acc = append(acc, b)
	}
	if string(acc) != strings.Repeat(line, 100) {
		t.Fatal("incorrect bytes read across refills")
	}
	assertRead(t, s, EOF, nil)
}

func TestLineCounting(t *testing.T) {
	s := strScanner("ab\ncd\n")
	if got := s.Line(); got != 1 {
		t.Fatalf("Line before any read: expected 1, got %d", got)
	}
	assertRead(t, s, 'a', nil)
	assertRead(t, s, 'b', nil)
	assertRead(t, s, '\n', nil)
	if got := s.Line(); got != 2 {
		t.Fatalf("Line after first newline: expected 2, got %d", got)
	}
	s.Back()
	if got := s.Line(); got != 1 {
		t.Fatalf("Line after Back over newline: expected 1, got %d", got)
	}
	assertRead(t, s, '\n', nil)
	assertRead(t, s, 'c', nil)
	assertRead(t, s, 'd', nil)
	assertRead(t, s, '\n', nil)
	if got := s.Line(); got != 3 {
		t.Fatalf("Line after second newline: expected 3, got %d", got)
	}
}

func TestBackPanicsWithoutRead(t *testing.T) {
	s := strScanner("x")
	defer func() {
		if recover() == nil {
			t.Fatal("expected Back to panic without a matching Read")
		}
	}()
	s.Back()
}

func TestSkipSpaceAndPeek(t *testing.T) {
	s := strScanner("  \n\t x")
	b, err := s.SkipSpaceAndPeek()
	if err != nil || b != 'x' {
		t.Fatalf("expected ('x', nil), got (%q, %v)", b, err)
	}
	if got := s.Line(); got != 2 {
		t.Fatalf("expected line 2 after skipping one newline, got %d", got)
	}
	assertRead(t, s, 'x', nil)
}

func TestSkipSpaceAndReadAllWhitespace(t *testing.T) {
	s := strScanner("   \n\n")
	b, err := s.SkipSpaceAndRead()
	if err != nil || b != EOF {
		t.Fatalf("expected (EOF, nil), got (%q, %v)", b, err)
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestSourceError(t *testing.T) {
	want := errors.New("boom")
	s := NewScanner(errReader{want})
	_, err := s.Read()
	if !errors.Is(err, want) {
		t.Fatalf("expected source error to propagate, got %v", err)
	}
}

func TestReadRaw(t *testing.T) {
	s := strScanner("hello world")
	assertRead(t, s, 'h', nil)
	if got := s.ReadRaw(5); got != "ello " {
		t.Fatalf("ReadRaw: expected %q, got %q", "ello ", got)
	}
	// ReadRaw must not consume bytes.
	assertRead(t, s, 'e', nil)
}

func TestReadRawNearEOF(t *testing.T) {
	s := strScanner("ab")
	if got := s.ReadRaw(10); got != "ab" {
		t.Fatalf("ReadRaw: expected %q, got %q", "ab", got)
	}
}
