// Package present renders command results for the terminal.
//
// Successful responses go to stdout as 2-space indented JSON (or YAML), syntax
// highlighted when color is on. Failures go to stderr under a header naming the
// operation, followed by everything known about the failure: the message and,
// for API errors, the status code and the error document.
package present

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/secureonelabs/saf/internal/endpoint"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

// Format is the document syntax used for results.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{string(FormatJSON), string(FormatYAML)}

// Options control rendering.
type Options struct {
	Format Format
	Color  bool
}

// PayloadError is an error that carries a structured response from the remote
// side, such as an HTTP error status with a JSON body.
type PayloadError interface {
	error
	StatusCode() int
	Payload() any
}

var (
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4473"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE763"))
)

// Presenter writes results to out and failures to errOut.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	opts   Options
}

// New returns a presenter writing to the given streams.
func New(out, errOut io.Writer, opts Options) *Presenter {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &Presenter{out: out, errOut: errOut, opts: opts}
}

// NewStdio returns a presenter on stdout/stderr.
func NewStdio(opts Options) *Presenter {
	return New(os.Stdout, os.Stderr, opts)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Outcome renders o as a success or a failure.
func (p *Presenter) Outcome(o endpoint.Outcome) error {
	if o.OK() {
		return p.Success(o.Label, o.Body)
	}
	return p.Failure(o.Label, o.Err)
}

// Success writes body. Text bodies are written as they are.
func (p *Presenter) Success(_ string, body any) error {
	if text, ok := body.(string); ok {
		_, err := fmt.Fprintln(p.out, text)
		return err
	}

	doc, err := p.render(body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, doc)
	return err
}

// Failure writes a header naming label, then err's message and, when err
// carries one, the status code and payload.
func (p *Presenter) Failure(label string, err error) error {
	var b strings.Builder
	b.WriteString(p.style(failureStyle, fmt.Sprintf("✗ %s request failed", label)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %v\n", err)

	var payloadErr PayloadError
	if errors.As(err, &payloadErr) {
		fmt.Fprintf(&b, "  status: %d\n", payloadErr.StatusCode())
		if payload := payloadErr.Payload(); payload != nil {
			if text, ok := payload.(string); ok {
				b.WriteString(text)
			} else {
				doc, rerr := p.render(payload)
				if rerr != nil {
					return rerr
				}
				b.WriteString(doc)
			}
			b.WriteString("\n")
		}
	}

	_, werr := io.WriteString(p.errOut, b.String())
	return werr
}

// Warn writes a usage hint or other advisory text to errOut.
func (p *Presenter) Warn(msg string) {
	fmt.Fprintln(p.errOut, p.style(warnStyle, msg))
}

func (p *Presenter) style(s lipgloss.Style, text string) string {
	if !p.opts.Color {
		return text
	}
	return s.Render(text)
}

// render produces the indented document for v in the configured format.
func (p *Presenter) render(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}

	doc := buf.Bytes()
	language := "json"
	if p.opts.Format == FormatYAML {
		y, err := yaml.JSONToYAML(doc)
		if err != nil {
			return "", fmt.Errorf("failed to convert response to YAML: %w", err)
		}
		doc = y
		language = "yaml"
	}

	text := strings.TrimRight(string(doc), "\n")
	if p.opts.Color {
		text = highlight(text, language)
	}
	return text, nil
}

// highlight colorizes code for a 256-color terminal. On any lexer or
// formatter problem the input is returned unchanged.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
