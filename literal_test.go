package jsonstream

import (
	"testing"

	"github.com/corestream/jsonstream/internal/scanner"
)

func TestScanTrueFalseNull(t *testing.T) {
	tests := []struct {
		fn    func(*scanner.Scanner) *scanner.Error
		input string
	}{
		{scanTrue, "rue"},
		{scanFalse, "alse"},
		{scanNull, "ull"},
	}
	for _, tt := range tests {
		s := scanner.NewScanner(fixedReader(tt.input))
		if err := tt.fn(s); err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
		}
	}
}

func TestScanLiteralMismatch(t *testing.T) {
	s := scanner.NewScanner(fixedReader("ulse"))
	if err := scanTrue(s); err == nil {
		t.Fatal("expected an error for a mismatched literal")
	}
}

func TestScanLiteralTruncated(t *testing.T) {
	s := scanner.NewScanner(fixedReader("ru"))
	err := scanTrue(s)
	if err == nil || err.Kind != scanner.UnexpectedEOF {
		t.Fatalf("expected UnexpectedEOF, got %v", err)
	}
}
