// Command jsonfmt reformats or validates a single JSON document read from
// stdin or a file argument, using a bounded-memory streaming Parser and
// Writer instead of building an in-memory tree. Grounded on cmd/jp/main.go:
// SIGPIPE handling, isatty-based color detection, and the fatalError/flag
// plumbing follow it directly, stripped of the transform/CSV/JPV machinery
// that is out of scope here.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/corestream/jsonstream"
)

func main() {
	signal.Ignore(syscall.SIGPIPE)

	var (
		indent      int
		compact     bool
		validate    bool
		decimal     bool
		colorMode   string
		maxValueLen int
	)

	flag.Usage = printUsage
	flag.IntVar(&indent, "indent", 2, "indentation width (ignored with -compact)")
	flag.BoolVar(&compact, "compact", false, "output JSON on a single line")
	flag.BoolVar(&validate, "validate", false, "only check that the input is well-formed; print nothing")
	flag.BoolVar(&decimal, "decimal", false, "preserve exact number lexemes instead of materializing int64/float64")
	flag.StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")
	flag.IntVar(&maxValueLen, "max-value-length", 0, "cap in bytes on any single string or number (0: use the default)")
	flag.Parse()

	var input io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fatalError("%s", err)
		}
		defer f.Close()
		input = f
	}

	cfg := jsonstream.Config{MaxValueLength: maxValueLen}
	if decimal {
		cfg.NumberParsing = jsonstream.AllDecimal
	}

	parser := jsonstream.NewParser(input, cfg)

	if validate {
		if err := validateOnly(parser); err != nil {
			fatalError("%s", err)
		}
		return
	}

	useColor, err := shouldColor(colorMode)
	if err != nil {
		fatalError("%s", err)
	}

	var out io.Writer = os.Stdout
	if useColor {
		out = colorable.NewColorableStdout()
	}

	var writer *jsonstream.Writer
	if compact {
		writer = jsonstream.NewCompactWriter(out, cfg)
	} else {
		writer = jsonstream.NewWriterIndent(out, indent, cfg)
	}
	if useColor {
		writer.Colorizer = &defaultColorizer
	}

	if err := copyTokens(parser, writer); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			return
		}
		fatalError("%s", err)
	}
	if err := writer.NewLine(); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			return
		}
		fatalError("%s", err)
	}
}

func copyTokens(p *jsonstream.Parser, w *jsonstream.Writer) error {
	for {
		tok, err := p.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := w.Write(tok); err != nil {
			return err
		}
	}
}

func validateOnly(p *jsonstream.Parser) error {
	for {
		_, err := p.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func shouldColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return isatty.IsTerminal(os.Stdout.Fd()), nil
	default:
		return false, fmt.Errorf("invalid -color value: %q (use auto, always, or never)", mode)
	}
}

var defaultColorizer = jsonstream.Colorizer{
	KeyColorCode:      []byte("\033[34;1m"),
	StringColorCode:   []byte("\033[33m"),
	NumberColorCode:   []byte("\033[37m"),
	BoolNullColorCode: []byte("\033[32m"),
	ResetCode:         []byte("\033[0m"),
}

func fatalError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `jsonfmt - stream-based JSON formatter and validator

USAGE:
  jsonfmt [options] [file]

  Reads a single JSON document from the file argument, or from stdin if
  none is given, and reformats it using constant memory regardless of
  document size.

OPTIONS:
  -compact             Output JSON on a single line
  -indent N            Indentation width (default 2, ignored with -compact)
  -validate            Only check well-formedness; print nothing on success
  -decimal             Preserve exact number lexemes (arbitrary precision)
  -color MODE          auto, always, or never (default auto)
  -max-value-length N  Cap in bytes on any single string or number
`)
}
