// Package netsparker converts Netsparker Enterprise XML scan reports to HDF.
//
// Findings are grouped into one control per vulnerability type (LookupId);
// every affected URL becomes a failed result of that control.
package netsparker

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/secureonelabs/saf/internal/convert"
	"github.com/secureonelabs/saf/internal/hdf"
	"github.com/secureonelabs/saf/internal/version"
)

// Fingerprint identifies Netsparker Enterprise reports.
var Fingerprint = convert.Fingerprint{
	Name:       "Netsparker",
	Signatures: []string{"<netsparker-enterprise", "<netsparker-cloud"},
}

// DefaultNIST is used for findings without an SP 800-53 classification.
var DefaultNIST = []string{"SA-11", "RA-5"}

var impactBySeverity = map[string]float64{
	"critical":     0.9,
	"high":         0.7,
	"medium":       0.5,
	"low":          0.3,
	"bestpractice": 0,
	"information":  0,
}

// Options tune the conversion.
type Options struct {
	// IncludeRaw copies the source report into passthrough.raw.
	IncludeRaw bool
}

type report struct {
	Generated       string          `xml:"generated,attr"`
	Target          target          `xml:"target"`
	Vulnerabilities []vulnerability `xml:"vulnerabilities>vulnerability"`
}

type target struct {
	ScanID    string `xml:"scan-id"`
	URL       string `xml:"url"`
	Initiated string `xml:"initiated"`
	Duration  string `xml:"duration"`
}

type vulnerability struct {
	LookupID          string         `xml:"LookupId"`
	URL               string         `xml:"url"`
	Type              string         `xml:"type"`
	Name              string         `xml:"name"`
	Severity          string         `xml:"severity"`
	Certainty         string         `xml:"certainty"`
	State             string         `xml:"state"`
	Classification    classification `xml:"classification"`
	Request           httpRequest    `xml:"http-request"`
	Response          httpResponse   `xml:"http-response"`
	Description       string         `xml:"description"`
	Impact            string         `xml:"impact"`
	RemedialActions   string         `xml:"remedial-actions"`
	RemedialProcedure string         `xml:"remedial-procedure"`
	RemedyReferences  string         `xml:"remedy-references"`
	ExternalRefs      string         `xml:"external-references"`
	ProofOfConcept    string         `xml:"proof-of-concept"`
}

type classification struct {
	OWASP    string `xml:"owasp"`
	WASC     string `xml:"wasc"`
	CWE      string `xml:"cwe"`
	CAPEC    string `xml:"capec"`
	PCI32    string `xml:"pci32"`
	HIPAA    string `xml:"hipaa"`
	ISO27001 string `xml:"iso27001"`
	NIST     string `xml:"nistsp80053"`
}

type httpRequest struct {
	Method  string `xml:"method"`
	Content string `xml:"content"`
}

type httpResponse struct {
	StatusCode string `xml:"status-code"`
	Duration   string `xml:"duration"`
	Content    string `xml:"content"`
}

// Convert parses a Netsparker report and maps it to an HDF execution.
func Convert(data []byte, opts Options) (*hdf.Execution, error) {
	var r report
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse Netsparker XML: %w", err)
	}

	profile := hdf.Profile{
		Name:       "Netsparker Enterprise Scan",
		Title:      fmt.Sprintf("Netsparker Enterprise Scan ID: %s URL: %s", r.Target.ScanID, r.Target.URL),
		Summary:    "Netsparker Enterprise Scan",
		Supports:   []any{},
		Attributes: []any{},
		Groups:     []any{},
		Status:     "loaded",
		Controls:   controls(r),
	}
	if err := profile.Seal(); err != nil {
		return nil, err
	}

	exec := &hdf.Execution{
		Platform: hdf.Platform{
			Name:     "Heimdall Tools",
			Release:  version.HDFVersion,
			TargetID: r.Target.URL,
		},
		Version:  version.HDFVersion,
		Profiles: []hdf.Profile{profile},
		Passthrough: map[string]any{
			"auxiliary_data": []any{map[string]any{
				"name": "Netsparker",
				"data": map[string]any{
					"generated": r.Generated,
					"scan-id":   r.Target.ScanID,
					"url":       r.Target.URL,
					"initiated": r.Target.Initiated,
				},
			}},
		},
	}
	if d, ok := parseDuration(r.Target.Duration); ok {
		exec.Statistics.Duration = &d
	}
	if opts.IncludeRaw {
		exec.Passthrough["raw"] = string(data)
	}
	return exec, nil
}

// controls groups findings by LookupId, keeping first-seen order.
func controls(r report) []hdf.Control {
	byID := make(map[string]*hdf.Control)
	var order []string

	for _, v := range r.Vulnerabilities {
		id := v.LookupID
		if id == "" {
			id = v.Type
		}
		c, ok := byID[id]
		if !ok {
			c = newControl(id, v)
			byID[id] = c
			order = append(order, id)
		}
		c.Results = append(c.Results, hdf.Result{
			Status:    hdf.StatusFailed,
			CodeDesc:  codeDesc(v),
			Message:   message(v),
			StartTime: r.Target.Initiated,
		})
	}

	out := make([]hdf.Control, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

func newControl(id string, v vulnerability) *hdf.Control {
	var fix []string
	for _, s := range []string{v.RemedialActions, v.RemedialProcedure} {
		if s = clean(s); s != "" {
			fix = append(fix, s)
		}
	}

	c := &hdf.Control{
		ID:    id,
		Title: v.Name,
		Desc:  clean(v.Description),
		Descriptions: []hdf.Description{
			{Label: "check", Data: clean(v.ProofOfConcept)},
			{Label: "fix", Data: strings.Join(fix, "\n")},
		},
		Impact:         impact(v.Severity),
		Refs:           refs(v),
		Tags:           tags(v),
		SourceLocation: map[string]any{},
	}
	return c
}

func impact(severity string) float64 {
	return impactBySeverity[strings.ToLower(strings.TrimSpace(severity))]
}

var nistControl = regexp.MustCompile(`[A-Z]{2}-\d+(\(\d+\))?`)

func nistTags(v vulnerability) []string {
	found := nistControl.FindAllString(v.Classification.NIST, -1)
	if len(found) == 0 {
		return append([]string(nil), DefaultNIST...)
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range found {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func tags(v vulnerability) map[string]any {
	t := map[string]any{
		"nist":      nistTags(v),
		"certainty": v.Certainty,
		"severity":  v.Severity,
	}
	if cwe := strings.TrimSpace(v.Classification.CWE); cwe != "" {
		t["cweid"] = "CWE-" + cwe
	}
	for key, value := range map[string]string{
		"owasp":    v.Classification.OWASP,
		"wasc":     v.Classification.WASC,
		"capec":    v.Classification.CAPEC,
		"pci32":    v.Classification.PCI32,
		"hipaa":    v.Classification.HIPAA,
		"iso27001": v.Classification.ISO27001,
	} {
		if value = strings.TrimSpace(value); value != "" {
			t[key] = value
		}
	}
	return t
}

func refs(v vulnerability) []hdf.Reference {
	refs := []hdf.Reference{}
	for _, s := range []string{v.RemedyReferences, v.ExternalRefs} {
		if s = clean(s); s != "" {
			refs = append(refs, hdf.Reference{Ref: s})
		}
	}
	return refs
}

func codeDesc(v vulnerability) string {
	var b strings.Builder
	fmt.Fprintf(&b, "http-request : %s %s", strings.TrimSpace(v.Request.Method), strings.TrimSpace(v.URL))
	if content := strings.TrimSpace(v.Request.Content); content != "" {
		fmt.Fprintf(&b, "\n%s", content)
	}
	return b.String()
}

func message(v vulnerability) string {
	var b strings.Builder
	fmt.Fprintf(&b, "http-response : %s", strings.TrimSpace(v.Response.StatusCode))
	if content := strings.TrimSpace(v.Response.Content); content != "" {
		fmt.Fprintf(&b, "\n%s", content)
	}
	return b.String()
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// clean strips the HTML markup Netsparker embeds in its text fields.
func clean(s string) string {
	s = htmlTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// parseDuration reads Netsparker's [d.]hh:mm:ss[.fffffff] into seconds.
func parseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	days := 0.0
	if dot := strings.Index(s, "."); dot >= 0 && dot < strings.Index(s, ":") {
		d, err := strconv.Atoi(s[:dot])
		if err != nil {
			return 0, false
		}
		days = float64(d)
		s = s[dot+1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return days*86400 + float64(h)*3600 + float64(m)*60 + sec, true
}
