package jsonstream

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestParser(input string) *Parser {
	return NewParserFromBytes([]byte(input), Config{})
}

func readAll(t *testing.T, p *Parser) []*Token {
	t.Helper()
	var toks []*Token
	for {
		tok, err := p.Read()
		if err == io.EOF {
			return toks
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		toks = append(toks, tok)
	}
}

func assertKey(t *testing.T, tok *Token, hasKey bool, key Key) {
	t.Helper()
	if tok.HasKey != hasKey {
		t.Fatalf("%s: HasKey = %v, want %v", tok.GoString(), tok.HasKey, hasKey)
	}
	if hasKey && !tok.Key.Equal(key) {
		t.Fatalf("%s: Key = %v, want %v", tok.GoString(), tok.Key, key)
	}
}

func TestParserScalarRoot(t *testing.T) {
	p := newTestParser(`42`)
	toks := readAll(t, p)
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
	if toks[0].Kind != KindNumber {
		t.Fatalf("expected KindNumber, got %v", toks[0].Kind)
	}
	assertKey(t, toks[0], false, Key{})
}

func TestParserEmptyArrayOfEmptyArray(t *testing.T) {
	// [[]] -> SA(nil), SA(0), EA(0), EA(nil)
	p := newTestParser(`[[]]`)
	toks := readAll(t, p)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[0].Kind != KindStartArray || toks[0].HasKey {
		t.Fatalf("token 0: expected unkeyed StartArray, got %s", toks[0].GoString())
	}
	if toks[1].Kind != KindStartArray {
		t.Fatalf("token 1: expected StartArray, got %s", toks[1].GoString())
	}
	assertKey(t, toks[1], true, IndexKey(0))
	if toks[2].Kind != KindEndArray {
		t.Fatalf("token 2: expected EndArray, got %s", toks[2].GoString())
	}
	assertKey(t, toks[2], true, IndexKey(0))
	if toks[3].Kind != KindEndArray || toks[3].HasKey {
		t.Fatalf("token 3: expected unkeyed EndArray, got %s", toks[3].GoString())
	}
}

func TestParserNestedObjectsDeferredKeyPop(t *testing.T) {
	// {"a":{"b":{"c":111}}}
	p := newTestParser(`{"a":{"b":{"c":111}}}`)
	toks := readAll(t, p)
	if len(toks) != 7 {
		t.Fatalf("expected 7 tokens, got %d", len(toks))
	}
	if toks[0].Kind != KindStartObject || toks[0].HasKey {
		t.Fatalf("token 0: expected unkeyed StartObject, got %s", toks[0].GoString())
	}
	if toks[1].Kind != KindStartObject {
		t.Fatalf("token 1: expected StartObject, got %s", toks[1].GoString())
	}
	assertKey(t, toks[1], true, NameKey("a"))
	if toks[2].Kind != KindStartObject {
		t.Fatalf("token 2: expected StartObject, got %s", toks[2].GoString())
	}
	assertKey(t, toks[2], true, NameKey("b"))
	if toks[3].Kind != KindNumber {
		t.Fatalf("token 3: expected Number, got %s", toks[3].GoString())
	}
	assertKey(t, toks[3], true, NameKey("c"))
	if got, _ := toks[3].Number().Int64(); got != 111 {
		t.Fatalf("token 3: expected 111, got %d", got)
	}
	if toks[4].Kind != KindEndObject {
		t.Fatalf("token 4: expected EndObject, got %s", toks[4].GoString())
	}
	assertKey(t, toks[4], true, NameKey("b"))
	if toks[5].Kind != KindEndObject {
		t.Fatalf("token 5: expected EndObject, got %s", toks[5].GoString())
	}
	assertKey(t, toks[5], true, NameKey("a"))
	if toks[6].Kind != KindEndObject || toks[6].HasKey {
		t.Fatalf("token 6: expected unkeyed EndObject, got %s", toks[6].GoString())
	}
}

func TestParserObjectWithEmptyChild(t *testing.T) {
	// {"a":{}}
	p := newTestParser(`{"a":{}}`)
	toks := readAll(t, p)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[0].Kind != KindStartObject || toks[0].HasKey {
		t.Fatalf("token 0: expected unkeyed StartObject, got %s", toks[0].GoString())
	}
	if toks[1].Kind != KindStartObject {
		t.Fatalf("token 1: expected StartObject, got %s", toks[1].GoString())
	}
	assertKey(t, toks[1], true, NameKey("a"))
	if toks[2].Kind != KindEndObject {
		t.Fatalf("token 2: expected EndObject, got %s", toks[2].GoString())
	}
	assertKey(t, toks[2], true, NameKey("a"))
	if toks[3].Kind != KindEndObject || toks[3].HasKey {
		t.Fatalf("token 3: expected unkeyed EndObject, got %s", toks[3].GoString())
	}
}

func TestParserArrayCommaHandling(t *testing.T) {
	// [1,2]
	p := newTestParser(`[1,2]`)
	toks := readAll(t, p)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[0].Kind != KindStartArray {
		t.Fatalf("token 0: expected StartArray, got %s", toks[0].GoString())
	}
	assertKey(t, toks[1], true, IndexKey(0))
	if got, _ := toks[1].Number().Int64(); got != 1 {
		t.Fatalf("token 1: expected 1, got %d", got)
	}
	assertKey(t, toks[2], true, IndexKey(1))
	if got, _ := toks[2].Number().Int64(); got != 2 {
		t.Fatalf("token 2: expected 2, got %d", got)
	}
	if toks[3].Kind != KindEndArray || toks[3].HasKey {
		t.Fatalf("token 3: expected unkeyed EndArray, got %s", toks[3].GoString())
	}
}

func TestParserMixedContainer(t *testing.T) {
	p := newTestParser(`{"name":"Alice","tags":["a","b"],"active":true,"score":null}`)
	toks := readAll(t, p)
	want := []*Token{
		startObject(Key{}, false),
		stringToken(NameKey("name"), true, "Alice"),
		startArray(NameKey("tags"), true),
		stringToken(IndexKey(0), true, "a"),
		stringToken(IndexKey(1), true, "b"),
		endArray(NameKey("tags"), true),
		boolToken(NameKey("active"), true, true),
		nullToken(NameKey("score"), true),
		endObject(Key{}, false),
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestParserPath(t *testing.T) {
	p := newTestParser(`{"a":[1,{"b":2}]}`)
	var gotPaths []string
	for {
		tok, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == KindNumber {
			gotPaths = append(gotPaths, p.PathString())
		}
	}
	want := []string{"a[0]", "a[1].b"}
	if diff := cmp.Diff(want, gotPaths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParserPathMatch(t *testing.T) {
	p := newTestParser(`{"a":{"b":[{"c":1}]}}`)
	var matched bool
	for {
		tok, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == KindNumber && p.PathMatch(NameKey("a"), NameKey("c")) {
			matched = true
		}
	}
	if !matched {
		t.Fatal("expected PathMatch(a, c) to match at some point")
	}
}

func TestParserEmptyDocumentIsError(t *testing.T) {
	p := newTestParser(``)
	_, err := p.Read()
	if err == nil {
		t.Fatal("expected an error for an empty document")
	}
}

func TestParserWhitespaceOnlyDocumentIsError(t *testing.T) {
	p := newTestParser("   \n\t  ")
	_, err := p.Read()
	if err == nil {
		t.Fatal("expected an error for a whitespace-only document")
	}
}

func TestParserTrailingDataIsError(t *testing.T) {
	p := newTestParser(`1 2`)
	tok, err := p.Read()
	if err != nil {
		t.Fatalf("unexpected error on first read: %v", err)
	}
	if got, _ := tok.Number().Int64(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	_, err = p.Read()
	if err == nil || err == io.EOF {
		t.Fatalf("expected a structural error for trailing data, got %v", err)
	}
}

func TestParserIsPoisonedAfterError(t *testing.T) {
	p := newTestParser(`[1, }`)
	for {
		_, err := p.Read()
		if err != nil {
			break
		}
	}
	tok, err := p.Read()
	if tok != nil || err != io.EOF {
		t.Fatalf("expected (nil, io.EOF) from a poisoned parser, got (%v, %v)", tok, err)
	}
}

func TestParserMismatchedBracketIsError(t *testing.T) {
	p := newTestParser(`[1, 2}`)
	var lastErr error
	for {
		_, err := p.Read()
		if err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil || errors.Is(lastErr, io.EOF) {
		t.Fatalf("expected a structural error, got %v", lastErr)
	}
}

func TestParserMissingCommaIsError(t *testing.T) {
	p := newTestParser(`[1 2]`)
	var lastErr error
	for {
		_, err := p.Read()
		if err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil {
		t.Fatal("expected an error for a missing comma")
	}
}

func TestParserDeepNesting(t *testing.T) {
	depth := 200
	var open, close string
	for i := 0; i < depth; i++ {
		open += "["
		close += "]"
	}
	p := newTestParser(open + "1" + close)
	toks := readAll(t, p)
	want := depth*2 + 1
	if len(toks) != want {
		t.Fatalf("expected %d tokens, got %d", want, len(toks))
	}
}

func TestParserOneByteBufferMatchesDefaultBuffer(t *testing.T) {
	input := `{"name":"Alice","tags":["a","b"],"active":true,"score":null}`

	normal := readAll(t, newTestParser(input))

	tiny := NewParserFromBytes([]byte(input), Config{BufferCapacity: 1})
	small := readAll(t, tiny)

	if diff := cmp.Diff(normal, small); diff != "" {
		t.Fatalf("1-byte buffer produced a different token stream (-default +1-byte):\n%s", diff)
	}
}

func TestParserLine(t *testing.T) {
	p := newTestParser("{\n  \"a\": 1\n}")
	for {
		tok, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == KindNumber {
			if p.Line() != 2 {
				t.Errorf("expected line 2 for the number, got %d", p.Line())
			}
		}
	}
}
