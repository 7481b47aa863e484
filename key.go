package jsonstream

import "strconv"

// KeyKind distinguishes the two flavors of Key.
type KeyKind uint8

const (
	// KeyName identifies an object property.
	KeyName KeyKind = iota
	// KeyIndex identifies an array element.
	KeyIndex
)

// Key is a single path component: either the name of an object property or
// the zero-based index of an array element. The zero Key is not meaningful
// on its own; Keys are built with NameKey or IndexKey, or produced by the
// Parser.
type Key struct {
	kind  KeyKind
	name  string
	index int
}

// NameKey constructs a Key for an object property.
func NameKey(name string) Key {
	return Key{kind: KeyName, name: name}
}

// IndexKey constructs a Key for an array element.
func IndexKey(index int) Key {
	return Key{kind: KeyIndex, index: index}
}

// IsName reports whether k identifies an object property.
func (k Key) IsName() bool { return k.kind == KeyName }

// IsIndex reports whether k identifies an array element.
func (k Key) IsIndex() bool { return k.kind == KeyIndex }

// Name returns the property name. It panics if !k.IsName().
func (k Key) Name() string {
	if k.kind != KeyName {
		panic("jsonstream: Key.Name called on an index key")
	}
	return k.name
}

// Index returns the array index. It panics if !k.IsIndex().
func (k Key) Index() int {
	if k.kind != KeyIndex {
		panic("jsonstream: Key.Index called on a name key")
	}
	return k.index
}

// Equal reports whether two keys have the same tag and payload.
func (k Key) Equal(other Key) bool {
	if k.kind != other.kind {
		return false
	}
	if k.kind == KeyName {
		return k.name == other.name
	}
	return k.index == other.index
}

func (k Key) String() string {
	if k.kind == KeyName {
		return k.name
	}
	return "[" + strconv.Itoa(k.index) + "]"
}

// Path is the ordered sequence of keys from the document root to the
// slot a token occupies in its parent. A Path returned by Parser.Path is a
// defensive copy; mutating it has no effect on the parser.
type Path []Key

// String renders the path in dotted form, e.g. "a.b[2].c".
func (p Path) String() string {
	var b []byte
	for i, k := range p {
		if k.IsIndex() {
			b = append(b, k.String()...)
			continue
		}
		if i > 0 {
			b = append(b, '.')
		}
		b = append(b, k.name...)
	}
	return string(b)
}

// Match reports whether there is a strictly increasing subsequence of
// positions in p whose keys equal keys in order. Unmatched leading,
// trailing, and intervening keys are permitted. It runs in O(len(p)*len(keys))
// using two cursors.
func (p Path) Match(keys ...Key) bool {
	j := 0
	for i := 0; i < len(p) && j < len(keys); i++ {
		if p[i].Equal(keys[j]) {
			j++
		}
	}
	return j == len(keys)
}
