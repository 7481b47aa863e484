package jsonstream

import "fmt"

// TokenKind identifies which JSON construct a Token represents.
type TokenKind uint8

const (
	KindStartObject TokenKind = iota
	KindEndObject
	KindStartArray
	KindEndArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k TokenKind) String() string {
	switch k {
	case KindStartObject:
		return "startObject"
	case KindEndObject:
		return "endObject"
	case KindStartArray:
		return "startArray"
	case KindEndArray:
		return "endArray"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Token is one unit of a parsed JSON document: a container boundary or a
// scalar value, together with the Key it occupies in its immediate parent.
// Key is the zero Key (not meaningful) and HasKey is false for tokens at the
// document root: a root scalar, or a root container's start and end tokens.
type Token struct {
	Kind   TokenKind
	Key    Key
	HasKey bool

	str     string
	num     Number
	boolVal bool
}

func startObject(key Key, hasKey bool) *Token { return &Token{Kind: KindStartObject, Key: key, HasKey: hasKey} }
func endObject(key Key, hasKey bool) *Token   { return &Token{Kind: KindEndObject, Key: key, HasKey: hasKey} }
func startArray(key Key, hasKey bool) *Token  { return &Token{Kind: KindStartArray, Key: key, HasKey: hasKey} }
func endArray(key Key, hasKey bool) *Token    { return &Token{Kind: KindEndArray, Key: key, HasKey: hasKey} }

func stringToken(key Key, hasKey bool, v string) *Token {
	return &Token{Kind: KindString, Key: key, HasKey: hasKey, str: v}
}

func numberToken(key Key, hasKey bool, v Number) *Token {
	return &Token{Kind: KindNumber, Key: key, HasKey: hasKey, num: v}
}

func boolToken(key Key, hasKey bool, v bool) *Token {
	return &Token{Kind: KindBool, Key: key, HasKey: hasKey, boolVal: v}
}

func nullToken(key Key, hasKey bool) *Token {
	return &Token{Kind: KindNull, Key: key, HasKey: hasKey}
}

// String returns t's string value. It panics if t.Kind != KindString.
func (t *Token) String() string {
	if t.Kind != KindString {
		panic("jsonstream: Token.String called on a " + t.Kind.String() + " token")
	}
	return t.str
}

// Number returns t's number value. It panics if t.Kind != KindNumber.
func (t *Token) Number() Number {
	if t.Kind != KindNumber {
		panic("jsonstream: Token.Number called on a " + t.Kind.String() + " token")
	}
	return t.num
}

// Bool returns t's boolean value. It panics if t.Kind != KindBool.
func (t *Token) Bool() bool {
	if t.Kind != KindBool {
		panic("jsonstream: Token.Bool called on a " + t.Kind.String() + " token")
	}
	return t.boolVal
}

// Equal reports whether t and other represent the same token: same kind,
// same key (or both unkeyed), and same scalar payload if any. It lets
// go-cmp compare *Token values without reaching into unexported fields.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind || t.HasKey != other.HasKey {
		return false
	}
	if t.HasKey && !t.Key.Equal(other.Key) {
		return false
	}
	switch t.Kind {
	case KindString:
		return t.str == other.str
	case KindNumber:
		return t.num.Equal(other.num)
	case KindBool:
		return t.boolVal == other.boolVal
	default:
		return true
	}
}

// GoString renders t for debugging.
func (t *Token) GoString() string {
	if !t.HasKey {
		return fmt.Sprintf("%s", t.Kind)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Key)
}
