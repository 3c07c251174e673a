// Package convert holds what the `saf convert` commands share: input
// fingerprinting and output naming. Each source format lives in its own
// subpackage.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrFormatMismatch means the input does not look like the format the
// command converts.
var ErrFormatMismatch = errors.New("input format mismatch")

// sniffLimit bounds how much of the input is searched for a signature.
const sniffLimit = 64 * 1024

// Fingerprint identifies a source format by markers near the start of a file.
type Fingerprint struct {
	Name       string
	Signatures []string
}

// Matches reports whether any signature occurs in the head of data.
func (f Fingerprint) Matches(data []byte) bool {
	head := data
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}
	for _, sig := range f.Signatures {
		if bytes.Contains(head, []byte(sig)) {
			return true
		}
	}
	return false
}

// CheckInput verifies that the file at path, whose content is data, is in
// the format described by f.
func CheckInput(path string, data []byte, f Fingerprint) error {
	if !f.Matches(data) {
		return fmt.Errorf("%w: %s does not look like a %s file", ErrFormatMismatch, path, f.Name)
	}
	return nil
}

// CheckSuffix returns path with a .json extension, appending one if needed.
func CheckSuffix(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return path
	}
	return path + ".json"
}
