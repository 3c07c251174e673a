package hdf

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Result statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Execution is the typed form of an HDF results document, used by the
// converters when building a document from scratch.
type Execution struct {
	Platform    Platform       `json:"platform"`
	Version     string         `json:"version"`
	Statistics  Statistics     `json:"statistics"`
	Profiles    []Profile      `json:"profiles"`
	Passthrough map[string]any `json:"passthrough,omitempty"`
}

// Platform identifies the scanned target.
type Platform struct {
	Name     string `json:"name"`
	Release  string `json:"release"`
	TargetID string `json:"target_id,omitempty"`
}

// Statistics of the run. Duration is in seconds.
type Statistics struct {
	Duration *float64 `json:"duration,omitempty"`
}

// Profile is one set of evaluated controls.
type Profile struct {
	Name       string    `json:"name"`
	Version    string    `json:"version,omitempty"`
	Title      string    `json:"title,omitempty"`
	Maintainer string    `json:"maintainer,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	License    string    `json:"license,omitempty"`
	Supports   []any     `json:"supports"`
	Attributes []any     `json:"attributes"`
	Groups     []any     `json:"groups"`
	Status     string    `json:"status"`
	SHA256     string    `json:"sha256"`
	Controls   []Control `json:"controls"`
}

// Seal sets SHA256 to the digest of the profile's JSON encoding with an
// empty SHA256 field.
func (p *Profile) Seal() error {
	p.SHA256 = ""
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to hash profile %s: %w", p.Name, err)
	}
	sum := sha256.Sum256(data)
	p.SHA256 = hex.EncodeToString(sum[:])
	return nil
}

// Control is one requirement and its results.
type Control struct {
	ID             string         `json:"id"`
	Title          string         `json:"title,omitempty"`
	Desc           string         `json:"desc,omitempty"`
	Descriptions   []Description  `json:"descriptions"`
	Impact         float64        `json:"impact"`
	Refs           []Reference    `json:"refs"`
	Tags           map[string]any `json:"tags"`
	Code           string         `json:"code,omitempty"`
	SourceLocation map[string]any `json:"source_location"`
	Results        []Result       `json:"results"`
}

// Description is a labelled block of control text (check, fix, ...).
type Description struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reference points at external material.
type Reference struct {
	URL string `json:"url,omitempty"`
	Ref string `json:"ref,omitempty"`
}

// Result is one test outcome of a control.
type Result struct {
	Status    string `json:"status"`
	CodeDesc  string `json:"code_desc"`
	Message   string `json:"message,omitempty"`
	StartTime string `json:"start_time"`
}
