package hdf

import (
	"fmt"
	"os"
)

// Supplement attributes that can be patched into a document.
const (
	AttrTarget      = "target"
	AttrPassthrough = "passthrough"
)

// PayloadSource is where the value of a patch comes from: inline JSON text
// or a JSON file. Exactly one must be set.
type PayloadSource struct {
	Data string
	File string
}

// Validate checks that exactly one source is set. attr names the attribute
// in the message, matching the --<attr>Data / --<attr>File flags.
func (s PayloadSource) Validate(attr string) error {
	switch {
	case s.Data != "" && s.File != "":
		return fmt.Errorf("%w: only one of %sFile or %sData may be passed", ErrConfiguration, attr, attr)
	case s.Data == "" && s.File == "":
		return fmt.Errorf("%w: one out of %sFile or %sData must be passed", ErrConfiguration, attr, attr)
	}
	return nil
}

// Read returns the payload value. Inline data that is not valid JSON is used
// as a plain string; a file that does not parse is a *ParseError.
func (s PayloadSource) Read(attr string) (any, error) {
	if s.Data != "" {
		v, err := decodeJSON([]byte(s.Data))
		if err != nil {
			return s.Data, nil
		}
		return v, nil
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s data file: %w", attr, err)
	}
	v, err := decodeJSON(data)
	if err != nil {
		return nil, &ParseError{Source: fmt.Sprintf("%s data in %s", attr, s.File), Err: err}
	}
	return v, nil
}

// Patch replaces one top-level attribute of the document at Input and writes
// the result to Output (Input when empty).
type Patch struct {
	Input     string
	Output    string
	Attribute string
	Source    PayloadSource
}

// PatchResult describes a persisted patch.
type PatchResult struct {
	Output string
	Bytes  int
}

// Apply runs the patch. Inputs are checked before any file is touched and
// the output file is only replaced once the new content is fully written.
func (p Patch) Apply() (PatchResult, error) {
	if p.Input == "" {
		return PatchResult{}, fmt.Errorf("%w: input file is required", ErrConfiguration)
	}
	if err := p.Source.Validate(p.Attribute); err != nil {
		return PatchResult{}, err
	}

	doc, err := Load(p.Input)
	if err != nil {
		return PatchResult{}, err
	}
	value, err := p.Source.Read(p.Attribute)
	if err != nil {
		return PatchResult{}, err
	}
	doc.Set(p.Attribute, value)

	output := p.Output
	if output == "" {
		output = p.Input
	}
	n, err := doc.Save(output)
	if err != nil {
		return PatchResult{}, err
	}
	return PatchResult{Output: output, Bytes: n}, nil
}

// ReadAttribute returns one top-level attribute of the document at path. A
// missing attribute reads as an empty object.
func ReadAttribute(path, attr string) (any, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	if v, ok := doc.Get(attr); ok {
		return v, nil
	}
	return map[string]any{}, nil
}
