package hdf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "object", input: `{"a":1}`},
		{name: "malformed", input: `{"a":`, wantErr: "couldn't parse in.json"},
		{name: "array", input: `[1,2]`, wantErr: "top level is an array"},
		{name: "trailing data", input: `{"a":1}{"b":2}`, wantErr: "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input), "in.json")
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, json.Number("1"), doc["a"])
				return
			}
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPayloadSourceValidate(t *testing.T) {
	assert.ErrorIs(t, PayloadSource{}.Validate(AttrTarget), ErrConfiguration)
	assert.ErrorIs(t, PayloadSource{Data: "{}", File: "x.json"}.Validate(AttrTarget), ErrConfiguration)
	assert.NoError(t, PayloadSource{Data: "{}"}.Validate(AttrTarget))
	assert.NoError(t, PayloadSource{File: "x.json"}.Validate(AttrTarget))

	err := PayloadSource{}.Validate(AttrPassthrough)
	assert.Contains(t, err.Error(), "passthroughFile or passthroughData")
}

func TestPatchInlineData(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"a":1}`)
	out := filepath.Join(dir, "out.json")

	res, err := Patch{Input: in, Output: out, Attribute: AttrTarget, Source: PayloadSource{Data: `{"a":5}`}}.Apply()
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)

	want := "{\n  \"a\": 1,\n  \"target\": {\n    \"a\": 5\n  }\n}\n"
	assert.Equal(t, want, readFile(t, out))
	assert.Equal(t, len(want), res.Bytes)
	assert.Equal(t, `{"a":1}`, readFile(t, in), "input is untouched when output differs")
}

func TestPatchInlineNonJSONFallsBackToString(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"a":1}`)

	_, err := Patch{Input: in, Attribute: AttrTarget, Source: PayloadSource{Data: "host-01 <prod>"}}.Apply()
	require.NoError(t, err)

	doc, err := Load(in)
	require.NoError(t, err)
	assert.Equal(t, "host-01 <prod>", doc["target"])
	assert.Contains(t, readFile(t, in), `"host-01 <prod>"`, "HTML characters are not escaped")
}

func TestPatchFromFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"a":1,"passthrough":{"old":true}}`)
	payload := writeFile(t, dir, "payload.json", `{"ticket":"SEC-12","big":12345678901234567890}`)

	_, err := Patch{Input: in, Attribute: AttrPassthrough, Source: PayloadSource{File: payload}}.Apply()
	require.NoError(t, err)

	content := readFile(t, in)
	assert.NotContains(t, content, "old", "attribute is replaced wholesale")
	assert.Contains(t, content, "12345678901234567890", "large numbers survive")
}

func TestPatchFileParseErrorLeavesInputUntouched(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"a":1}`)
	payload := writeFile(t, dir, "payload.json", `not json`)

	_, err := Patch{Input: in, Attribute: AttrTarget, Source: PayloadSource{File: payload}}.Apply()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "target data")
	assert.Equal(t, `{"a":1}`, readFile(t, in))
}

func TestPatchConfigurationErrorBeforeAnyRead(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.json")

	_, err := Patch{
		Input:     missing,
		Attribute: AttrTarget,
		Source:    PayloadSource{Data: "{}", File: missing},
	}.Apply()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestPatchMalformedInput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"a":`)

	_, err := Patch{Input: in, Attribute: AttrTarget, Source: PayloadSource{Data: "{}"}}.Apply()
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestPatchIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"z":[1,2.50,{"y":null}],"a":"x"}`)
	patch := Patch{Input: in, Attribute: AttrTarget, Source: PayloadSource{Data: `{"host":"db01"}`}}

	_, err := patch.Apply()
	require.NoError(t, err)
	first := readFile(t, in)

	_, err = patch.Apply()
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, in))
	assert.Contains(t, first, "2.50", "number text is preserved")
}

func TestReadAttribute(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"target":{"host":"db01"}}`)

	v, err := ReadAttribute(in, AttrTarget)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "db01"}, v)

	v, err = ReadAttribute(in, AttrPassthrough)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)
}

func TestProfileSeal(t *testing.T) {
	p := Profile{Name: "scan", Status: "loaded", Controls: []Control{{ID: "1", Impact: 0.5}}}
	require.NoError(t, p.Seal())
	first := p.SHA256
	assert.Len(t, first, 64)

	require.NoError(t, p.Seal())
	assert.Equal(t, first, p.SHA256, "sealing is stable")

	p.Controls[0].Impact = 0.7
	require.NoError(t, p.Seal())
	assert.NotEqual(t, first, p.SHA256)
}

func TestPatchStoresControlResult(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"profiles":[]}`)

	data, err := EncodeJSON(Result{Status: StatusFailed, CodeDesc: "GET /login", StartTime: "2024-01-02T03:04:05Z"})
	require.NoError(t, err)
	payload := writeFile(t, dir, "result.json", string(data))

	var res PatchResult
	res, err = Patch{Input: in, Attribute: AttrPassthrough, Source: PayloadSource{File: payload}}.Apply()
	require.NoError(t, err)
	assert.Equal(t, in, res.Output)
	assert.Positive(t, res.Bytes)

	stored, err := ReadAttribute(in, AttrPassthrough)
	require.NoError(t, err)
	var got Result
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "GET /login", got.CodeDesc)
}
