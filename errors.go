package jsonstream

import "github.com/corestream/jsonstream/internal/scanner"

// Error is a structured parse or write failure: a kind, a 1-based line
// number, and an optional diagnostic message carrying a snippet of the
// input that triggered it. It is defined in internal/scanner (which already
// tracks line numbers for every byte it hands out) and re-exported here
// under the public name, the way a thin façade package re-exports an
// internal implementation type without forcing callers to import the
// internal package themselves.
type Error = scanner.Error

// ErrorKind classifies an Error.
type ErrorKind = scanner.ErrorKind

const (
	// IOError wraps a failure from the underlying byte source or sink,
	// kept distinct from end-of-input per §4.1/§7.
	IOError = scanner.IOError

	// UnexpectedInput covers grammar violations: bad structural bytes,
	// malformed numbers, stray commas, trailing garbage after the root
	// value, and so on.
	UnexpectedInput = scanner.UnexpectedInput

	// UnexpectedEOF is raised when the input ends while a value, string,
	// object, or array is still open.
	UnexpectedEOF = scanner.UnexpectedEOF

	// ValueTooLong is raised as soon as a string or number's scratch
	// buffer would reach Config.MaxValueLength, before any unbounded
	// allocation happens.
	ValueTooLong = scanner.ValueTooLong

	// InvalidUTF8 is raised when a fully-scanned string's bytes are not
	// valid UTF-8, and when a Writer is given such a string to write.
	InvalidUTF8 = scanner.InvalidUTF8

	// UnescapedControlCharacter is raised for any byte in 0x00-0x1F
	// appearing unescaped inside a string.
	UnescapedControlCharacter = scanner.UnescapedControlCharacter

	// InvalidEscapeSequence is raised for a malformed \u escape, an
	// unrecognized escape character, or an unpaired/invalid surrogate.
	InvalidEscapeSequence = scanner.InvalidEscapeSequence

	// UnexpectedError indicates an internal invariant failure. It must
	// never be reachable by malformed input alone.
	UnexpectedError = scanner.UnexpectedError
)
