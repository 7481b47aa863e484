package jsonstream

import (
	"bytes"
	"io"
	"os"

	"github.com/corestream/jsonstream/internal/scanner"
)

type frameKind uint8

const (
	frameArray frameKind = iota
	frameObject
)

func (k frameKind) String() string {
	if k == frameObject {
		return "object"
	}
	return "array"
}

func closerFor(k frameKind) byte {
	if k == frameObject {
		return '}'
	}
	return ']'
}

// frame is one entry of the parser's open-container stack. nextIndex is -1
// until the frame has produced its first child; for an array it then holds
// the index to assign to the next element, and for an object it is merely a
// non-negative sentinel meaning "at least one key has been seen".
type frame struct {
	kind      frameKind
	nextIndex int
}

// Parser pulls one Token at a time from a byte stream, per Read. It never
// buffers more than the current path of open containers plus the bytes of
// the value currently being scanned.
type Parser struct {
	cfg    Config
	s      *scanner.Scanner
	closer io.Closer

	frames []frame
	path   []Key

	rootSeen bool
	poisoned bool
}

// NewParser returns a Parser reading from r with the given Config.
func NewParser(r io.Reader, cfg Config) *Parser {
	cfg = cfg.withDefaults()
	p := &Parser{
		cfg: cfg,
		s:   scanner.NewScannerSize(r, cfg.BufferCapacity),
	}
	if cfg.CloseOnDrop {
		if c, ok := r.(io.Closer); ok {
			p.closer = c
		}
	}
	return p
}

// NewParserFromBytes returns a Parser reading from an in-memory buffer.
func NewParserFromBytes(b []byte, cfg Config) *Parser {
	return NewParser(bytes.NewReader(b), cfg)
}

// NewParserFromFile opens path and returns a Parser reading from it. The
// file is closed automatically when the parser finishes, errors, or Close
// is called explicitly.
func NewParserFromFile(path string, cfg Config) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cfg.CloseOnDrop = true
	return NewParser(f, cfg), nil
}

// Close closes the underlying reader if one was registered via
// Config.CloseOnDrop or NewParserFromFile. It is safe to call more than
// once.
func (p *Parser) Close() error {
	if p.closer == nil {
		return nil
	}
	c := p.closer
	p.closer = nil
	return c.Close()
}

// Line returns the 1-based line number of the most recently consumed byte.
func (p *Parser) Line() int { return p.s.Line() }

// Path returns a defensive copy of the path to the token most recently
// returned by Read.
func (p *Parser) Path() Path {
	cp := make(Path, len(p.path))
	copy(cp, p.path)
	return cp
}

// PathString renders Path in dotted form.
func (p *Parser) PathString() string { return p.Path().String() }

// PathMatch reports whether keys is a subsequence of the current path, per
// Path.Match.
func (p *Parser) PathMatch(keys ...Key) bool { return p.Path().Match(keys...) }

// Read returns the next Token, io.EOF once the single root value and any
// trailing whitespace have been consumed, or an *Error. Once Read has
// returned an error, the parser is poisoned: every subsequent call returns
// io.EOF without reading any further bytes.
func (p *Parser) Read() (*Token, error) {
	if p.poisoned {
		return nil, io.EOF
	}
	tok, err := p.read()
	if err != nil {
		p.poisoned = true
		if p.cfg.CloseOnDrop {
			p.Close()
		}
		return nil, err
	}
	if tok == nil {
		p.poisoned = true
		if p.cfg.CloseOnDrop {
			p.Close()
		}
		return nil, io.EOF
	}
	return tok, nil
}

func (p *Parser) read() (*Token, error) {
	if len(p.frames) == 0 {
		if p.rootSeen {
			return p.finishRoot()
		}
		return p.readRootValue()
	}
	return p.readWithinFrame()
}

func (p *Parser) finishRoot() (*Token, error) {
	b, err := p.s.SkipSpaceAndPeek()
	if err != nil {
		return nil, scanner.WrapIOError(p.s, err)
	}
	if b == scanner.EOF {
		return nil, nil
	}
	return nil, scanner.NewError(p.s, scanner.UnexpectedInput, "unexpected data after the root value")
}

func (p *Parser) readRootValue() (*Token, error) {
	b, err := p.s.SkipSpaceAndPeek()
	if err != nil {
		return nil, scanner.WrapIOError(p.s, err)
	}
	if b == scanner.EOF {
		return nil, scanner.NewError(p.s, scanner.UnexpectedEOF, "empty document")
	}
	tok, err := p.readValue(Key{}, false)
	if err != nil {
		return nil, err
	}
	if len(p.frames) == 0 {
		p.rootSeen = true
	}
	return tok, nil
}

// readValue consumes exactly one value (scalar, or the opening of a
// container) and returns its Token, labelling it with key/hasKey.
func (p *Parser) readValue(key Key, hasKey bool) (*Token, error) {
	b, err := p.s.SkipSpaceAndRead()
	if err != nil {
		return nil, scanner.WrapIOError(p.s, err)
	}
	switch {
	case b == scanner.EOF:
		return nil, scanner.NewError(p.s, scanner.UnexpectedEOF, "expected a value")
	case b == '{':
		p.frames = append(p.frames, frame{kind: frameObject, nextIndex: -1})
		return startObject(key, hasKey), nil
	case b == '[':
		p.frames = append(p.frames, frame{kind: frameArray, nextIndex: -1})
		return startArray(key, hasKey), nil
	case b == '"':
		str, err := scanString(p.s, p.cfg.MaxValueLength)
		if err != nil {
			return nil, err
		}
		return stringToken(key, hasKey, str), nil
	case b == 't':
		if err := scanTrue(p.s); err != nil {
			return nil, err
		}
		return boolToken(key, hasKey, true), nil
	case b == 'f':
		if err := scanFalse(p.s); err != nil {
			return nil, err
		}
		return boolToken(key, hasKey, false), nil
	case b == 'n':
		if err := scanNull(p.s); err != nil {
			return nil, err
		}
		return nullToken(key, hasKey), nil
	case b == '-' || scanner.IsDigit(b):
		p.s.Back()
		n, err := scanNumber(p.s, p.cfg.NumberParsing, p.cfg.MaxValueLength)
		if err != nil {
			return nil, err
		}
		return numberToken(key, hasKey, n), nil
	default:
		return nil, scanner.NewError(p.s, scanner.UnexpectedInput, "unexpected byte %q, expected a value", b)
	}
}

// readWithinFrame advances the innermost open container by exactly one
// token: either its first element, its next element after a comma, or its
// closing bracket.
func (p *Parser) readWithinFrame() (*Token, error) {
	top := &p.frames[len(p.frames)-1]

	if top.nextIndex == -1 {
		b, err := p.s.SkipSpaceAndPeek()
		if err != nil {
			return nil, scanner.WrapIOError(p.s, err)
		}
		if b == scanner.EOF {
			return nil, scanner.NewError(p.s, scanner.UnexpectedEOF, "unterminated %s", top.kind)
		}
		if b == closerFor(top.kind) {
			if _, err := p.s.Read(); err != nil {
				return nil, scanner.WrapIOError(p.s, err)
			}
			return p.closeFrame(top, false)
		}
		return p.firstElement(top)
	}

	b, err := p.s.SkipSpaceAndRead()
	if err != nil {
		return nil, scanner.WrapIOError(p.s, err)
	}
	switch {
	case b == scanner.EOF:
		return nil, scanner.NewError(p.s, scanner.UnexpectedEOF, "unterminated %s", top.kind)
	case b == closerFor(top.kind):
		return p.closeFrame(top, true)
	case b == ',':
		p.popLingering()
		return p.nextElement(top)
	default:
		return nil, scanner.NewError(p.s, scanner.UnexpectedInput, "expected ',' or %q, got %q", closerFor(top.kind), b)
	}
}

func (p *Parser) popLingering() {
	p.path = p.path[:len(p.path)-1]
}

// closeFrame closes the top frame. When hadChild is true, the lingering key
// of the container's last child is popped first. hadChild is false only when
// the container closes without ever having produced a child, so there is no
// child key to pop. In both cases the container's own key stays on the path:
// it belongs to the parent frame and is popped on the parent's own next
// comma or close.
func (p *Parser) closeFrame(top *frame, hadChild bool) (*Token, error) {
	if hadChild {
		p.popLingering()
	}
	var key Key
	hasKey := len(p.path) > 0
	if hasKey {
		key = p.path[len(p.path)-1]
	}
	var tok *Token
	if top.kind == frameObject {
		tok = endObject(key, hasKey)
	} else {
		tok = endArray(key, hasKey)
	}
	p.frames = p.frames[:len(p.frames)-1]
	if len(p.frames) == 0 {
		p.rootSeen = true
	}
	return tok, nil
}

func (p *Parser) firstElement(top *frame) (*Token, error) {
	if top.kind == frameObject {
		name, err := p.readKey()
		if err != nil {
			return nil, err
		}
		key := NameKey(name)
		p.path = append(p.path, key)
		top.nextIndex = 0
		return p.readValue(key, true)
	}
	key := IndexKey(0)
	p.path = append(p.path, key)
	top.nextIndex = 1
	return p.readValue(key, true)
}

func (p *Parser) nextElement(top *frame) (*Token, error) {
	if top.kind == frameObject {
		name, err := p.readKey()
		if err != nil {
			return nil, err
		}
		key := NameKey(name)
		p.path = append(p.path, key)
		return p.readValue(key, true)
	}
	idx := top.nextIndex
	key := IndexKey(idx)
	p.path = append(p.path, key)
	top.nextIndex = idx + 1
	return p.readValue(key, true)
}

// readKey consumes a `"name":` sequence and returns the decoded name.
func (p *Parser) readKey() (string, error) {
	b, err := p.s.SkipSpaceAndRead()
	if err != nil {
		return "", scanner.WrapIOError(p.s, err)
	}
	if b == scanner.EOF {
		return "", scanner.NewError(p.s, scanner.UnexpectedEOF, "expected an object key")
	}
	if b != '"' {
		return "", scanner.NewError(p.s, scanner.UnexpectedInput, "expected '\"' to start an object key, got %q", b)
	}
	name, err := scanString(p.s, p.cfg.MaxValueLength)
	if err != nil {
		return "", err
	}
	b, err = p.s.SkipSpaceAndRead()
	if err != nil {
		return "", scanner.WrapIOError(p.s, err)
	}
	if b != ':' {
		if b == scanner.EOF {
			return "", scanner.NewError(p.s, scanner.UnexpectedEOF, "expected ':' after object key")
		}
		return "", scanner.NewError(p.s, scanner.UnexpectedInput, "expected ':' after object key, got %q", b)
	}
	return name, nil
}
