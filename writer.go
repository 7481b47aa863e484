package jsonstream

import (
	"io"
	"os"
	"unicode/utf8"
)

// Writer is the generating counterpart to Parser: callers feed it Tokens in
// the same structural order Parser.Read would produce them, and it emits
// well-formed JSON. It is push-based and context-guarded: each container
// frame tracks whether it is an object or array and whether its first
// child has been written yet, driven one Token at a time rather than a
// whole subtree.
type Writer struct {
	cfg    Config
	p      Printer
	closer io.Closer

	// Colorizer, if non-nil, colorizes keys and scalars as they are
	// written. Nil (the default) emits plain JSON.
	Colorizer *Colorizer

	compact bool
	frames  []wframe
}

type wframe struct {
	kind       frameKind
	firstChild bool
}

// NewWriter returns a Writer sending indented, multi-line JSON to w, using
// 2 spaces per indentation level.
func NewWriter(w io.Writer, cfg Config) *Writer {
	return NewWriterIndent(w, 2, cfg)
}

// NewWriterIndent returns a Writer sending multi-line JSON to w, indented
// by indentSize spaces per level.
func NewWriterIndent(w io.Writer, indentSize int, cfg Config) *Writer {
	return newWriter(&DefaultPrinter{Writer: w, IndentSize: indentSize}, w, cfg, false)
}

// NewCompactWriter returns a Writer sending single-line JSON (no
// indentation, no newlines, no space after ':') to w.
func NewCompactWriter(w io.Writer, cfg Config) *Writer {
	return newWriter(&DefaultPrinter{Writer: w, IndentSize: -1}, w, cfg, true)
}

func newWriter(p Printer, w io.Writer, cfg Config, compact bool) *Writer {
	cfg = cfg.withDefaults()
	wr := &Writer{cfg: cfg, p: p, compact: compact}
	if cfg.CloseOnDrop {
		if c, ok := w.(io.Closer); ok {
			wr.closer = c
		}
	}
	return wr
}

// NewWriterToFile creates or truncates path and returns a Writer sending
// indented JSON to it. The file is closed when Close is called; a write
// error does not close it.
func NewWriterToFile(path string, cfg Config) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cfg.CloseOnDrop = true
	return NewWriter(f, cfg), nil
}

// Close closes the underlying writer if one was registered via
// Config.CloseOnDrop or NewWriterToFile.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

// Write emits tok, returning a *PrinterError if the underlying io.Writer
// failed, or an *Error if tok is not structurally valid at this point (for
// example, a token with no key inside an object, or an end token that does
// not match the open container). Several values may be written at the root
// one after another, as JSON-lines output does.
func (w *Writer) Write(tok *Token) (err error) {
	defer CatchPrinterError(&err)
	return w.write(tok)
}

func (w *Writer) write(tok *Token) error {
	// End tokens close the top frame rather than adding a child to it, so
	// they skip the separator and key-shape checks; writeEnd validates them.
	if len(w.frames) > 0 && tok.Kind != KindEndObject && tok.Kind != KindEndArray {
		top := &w.frames[len(w.frames)-1]
		if err := w.beforeChild(top, tok); err != nil {
			return err
		}
	}

	switch tok.Kind {
	case KindStartObject:
		w.p.PrintBytes([]byte{'{'})
		w.frames = append(w.frames, wframe{kind: frameObject, firstChild: true})
		return nil
	case KindStartArray:
		w.p.PrintBytes([]byte{'['})
		w.frames = append(w.frames, wframe{kind: frameArray, firstChild: true})
		return nil
	case KindEndObject, KindEndArray:
		return w.writeEnd(tok)
	case KindString:
		return w.writeString(tok.String(), w.colorFor(KindString))
	case KindNumber:
		w.printScalar(KindNumber, []byte(tok.Number().String()))
		return nil
	case KindBool:
		if tok.Bool() {
			w.printScalar(KindBool, []byte("true"))
		} else {
			w.printScalar(KindBool, []byte("false"))
		}
		return nil
	case KindNull:
		w.printScalar(KindNull, []byte("null"))
		return nil
	default:
		return &Error{Kind: UnexpectedInput, Message: "unknown token kind"}
	}
}

// beforeChild prints the separator/indent and key for a token that is a
// child of an already-open container, and validates that it carries the key
// shape the container expects.
func (w *Writer) beforeChild(top *wframe, tok *Token) error {
	if top.kind == frameObject && (!tok.HasKey || !tok.Key.IsName()) {
		return &Error{Kind: UnexpectedInput, Message: "object member written without a name key"}
	}
	if top.kind == frameArray && (!tok.HasKey || !tok.Key.IsIndex()) {
		return &Error{Kind: UnexpectedInput, Message: "array element written without an index key"}
	}
	if top.firstChild {
		w.p.Indent()
		top.firstChild = false
	} else {
		w.p.PrintBytes([]byte{','})
		w.p.NewLine()
	}
	if top.kind == frameObject {
		var keyColor []byte
		if w.Colorizer != nil {
			keyColor = w.Colorizer.KeyColorCode
		}
		if err := w.writeString(tok.Key.Name(), keyColor); err != nil {
			return err
		}
		if w.compact {
			w.p.PrintBytes([]byte{':'})
		} else {
			w.p.PrintBytes([]byte{':', ' '})
		}
	}
	return nil
}

func (w *Writer) colorFor(kind TokenKind) []byte {
	if w.Colorizer == nil {
		return nil
	}
	return w.Colorizer.colorFor(kind)
}

func (w *Writer) printScalar(kind TokenKind, body []byte) {
	w.Colorizer.printColored(w.p, w.colorFor(kind), body)
}

func (w *Writer) writeEnd(tok *Token) error {
	if len(w.frames) == 0 {
		return &Error{Kind: UnexpectedInput, Message: "unmatched end token"}
	}
	top := w.frames[len(w.frames)-1]
	wantKind := KindEndObject
	closeByte := byte('}')
	if top.kind == frameArray {
		wantKind = KindEndArray
		closeByte = ']'
	}
	if tok.Kind != wantKind {
		return &Error{Kind: UnexpectedInput, Message: "mismatched end token"}
	}
	w.frames = w.frames[:len(w.frames)-1]
	if !top.firstChild {
		w.p.Dedent()
	}
	w.p.PrintBytes([]byte{closeByte})
	return nil
}

// writeString encodes s as a JSON string literal, re-escaping only what
// the grammar requires: the two structural characters and control bytes.
// It makes a single pass; encoding from a valid Go string cannot fail
// partway through, so there is no retry path to consider.
func (w *Writer) writeString(s string, color []byte) error {
	if !utf8.ValidString(s) {
		return &Error{Kind: InvalidUTF8, Message: "string to write is not valid UTF-8"}
	}
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			buf = append(buf, '\\', '"')
		case b == '\\':
			buf = append(buf, '\\', '\\')
		case b == '\n':
			buf = append(buf, '\\', 'n')
		case b == '\t':
			buf = append(buf, '\\', 't')
		case b == '\r':
			buf = append(buf, '\\', 'r')
		case b == 0x08:
			buf = append(buf, '\\', 'b')
		case b == 0x0C:
			buf = append(buf, '\\', 'f')
		case b < 0x20:
			const hex = "0123456789abcdef"
			buf = append(buf, '\\', 'u', '0', '0', hex[b>>4], hex[b&0xF])
		default:
			buf = append(buf, b)
		}
	}
	buf = append(buf, '"')
	w.Colorizer.printColored(w.p, color, buf)
	return nil
}

// WriteString is a convenience for Write(a string token with the given key).
func (w *Writer) WriteString(key Key, hasKey bool, s string) error {
	return w.Write(stringToken(key, hasKey, s))
}

// WriteNumber is a convenience for Write(a number token with the given key).
func (w *Writer) WriteNumber(key Key, hasKey bool, n Number) error {
	return w.Write(numberToken(key, hasKey, n))
}

// WriteBool is a convenience for Write(a bool token with the given key).
func (w *Writer) WriteBool(key Key, hasKey bool, b bool) error {
	return w.Write(boolToken(key, hasKey, b))
}

// WriteNull is a convenience for Write(a null token with the given key).
func (w *Writer) WriteNull(key Key, hasKey bool) error {
	return w.Write(nullToken(key, hasKey))
}

// WriteStartObject is a convenience for Write(a startObject token).
func (w *Writer) WriteStartObject(key Key, hasKey bool) error {
	return w.Write(startObject(key, hasKey))
}

// WriteEndObject is a convenience for Write(an endObject token). The key it
// carries is ignored by write's validation; only Kind matters when closing.
func (w *Writer) WriteEndObject() error {
	return w.Write(&Token{Kind: KindEndObject})
}

// WriteStartArray is a convenience for Write(a startArray token).
func (w *Writer) WriteStartArray(key Key, hasKey bool) error {
	return w.Write(startArray(key, hasKey))
}

// WriteEndArray is a convenience for Write(an endArray token).
func (w *Writer) WriteEndArray() error {
	return w.Write(&Token{Kind: KindEndArray})
}

// NewLine emits a raw '\n', independent of indentation. It is meant for
// JSON-lines output: writing a complete top-level value, calling NewLine,
// then writing the next top-level value.
func (w *Writer) NewLine() (err error) {
	defer CatchPrinterError(&err)
	w.p.RawNewLine()
	return nil
}

// WriteObject writes a startObject token, invokes body with w positioned
// inside the new object, and always writes the matching endObject
// afterward, even if body returns an error. A body error is returned after
// the object has been closed; an error closing the object takes precedence
// only if body itself succeeded.
func (w *Writer) WriteObject(key Key, hasKey bool, body func(*Writer) error) error {
	if err := w.WriteStartObject(key, hasKey); err != nil {
		return err
	}
	bodyErr := body(w)
	if endErr := w.WriteEndObject(); endErr != nil && bodyErr == nil {
		return endErr
	}
	return bodyErr
}

// WriteArray writes a startArray token, invokes body with w positioned
// inside the new array, and always writes the matching endArray
// afterward, even if body returns an error, with the same error-precedence
// rule as WriteObject.
func (w *Writer) WriteArray(key Key, hasKey bool, body func(*Writer) error) error {
	if err := w.WriteStartArray(key, hasKey); err != nil {
		return err
	}
	bodyErr := body(w)
	if endErr := w.WriteEndArray(); endErr != nil && bodyErr == nil {
		return endErr
	}
	return bodyErr
}
