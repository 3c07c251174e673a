// Package hdf reads, patches and writes Heimdall Data Format documents.
//
// Documents are handled as generic JSON objects so that fields this package
// does not know about survive a load/save cycle untouched. Numbers are kept as
// json.Number for the same reason.
package hdf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/secureonelabs/saf/internal/fsutil"
)

// ErrConfiguration reports contradictory or missing command inputs. It is
// returned before any file is read.
var ErrConfiguration = errors.New("invalid configuration")

// ParseError reports content that is not the JSON it was expected to be.
type ParseError struct {
	Source string // file path or "inline data"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a decoded HDF file.
type Document map[string]any

// Load reads and decodes the document at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses data as a JSON object. source names the data in errors.
func Decode(data []byte, source string) (Document, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("top level is %s, not an object", jsonKind(v))}
	}
	return Document(obj), nil
}

// Get returns the value of a top-level attribute.
func (d Document) Get(attr string) (any, bool) {
	v, ok := d[attr]
	return v, ok
}

// Set replaces a top-level attribute wholesale.
func (d Document) Set(attr string, v any) {
	d[attr] = v
}

// Save writes d to path as 2-space indented JSON and returns the number of
// bytes written.
func (d Document) Save(path string) (int, error) {
	return WriteJSON(path, map[string]any(d))
}

// WriteJSON encodes v as 2-space indented JSON and atomically replaces path
// with it. HTML characters are not escaped.
func WriteJSON(path string, v any) (int, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return 0, err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(data), nil
}

// EncodeJSON renders v the way saf writes documents.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the JSON value")
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
