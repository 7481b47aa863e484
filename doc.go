// Package jsonstream implements a bounded-memory, pull-based JSON parser
// and a symmetric push-based generator: Parser.Read returns one Token at a
// time instead of building an in-memory tree, and Writer.Write accepts
// Tokens in the same order to re-emit well-formed JSON.
//
// Two number materialization modes are supported (see NumberParsing):
// IntDouble favors int64/float64 for easy arithmetic, AllDecimal preserves
// every number's exact source lexeme via Decimal.
//
// A single Config governs resource bounds (buffer size, max value length)
// and close-on-drop behavior for both Parser and Writer.
//
// The seq subpackage adapts Parser to range-over-func iteration for callers
// who prefer a for/range loop to a manual Read loop.
//
// The cmd/jsonfmt command is a small CLI built on this package: it
// reformats or validates a JSON document using constant memory regardless
// of document size.
package jsonstream
