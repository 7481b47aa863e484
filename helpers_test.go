package jsonstream

import "strings"

// fixedReader returns a reader over s for tests that want to construct a
// scanner directly, bypassing Parser.
func fixedReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
