// Package document holds the structured result of parsing free-form text: a
// title, an optional subtitle and an ordered, non-empty list of steps.
package document

import (
	"strconv"
	"strings"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Document is immutable once returned by Normalize. Callers that need a
// variant build a new one.
type Document struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Steps    []Step `json:"steps" yaml:"steps"`
}

// Step is one ordered item. Icon is resolved from IconName during
// normalization and never serialized.
type Step struct {
	ID          string  `json:"id" yaml:"id"`
	Number      int     `json:"number" yaml:"number"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	IconName    string  `json:"iconName,omitempty" yaml:"iconName,omitempty"`
	Icon        icon.ID `json:"-" yaml:"-"`
}

// Raw is the loosely-typed payload produced by a model or a hand-written
// file. Number accepts numbers or numeric strings.
type Raw struct {
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle" yaml:"subtitle"`
	Steps    []RawStep `json:"steps" yaml:"steps"`
}

type RawStep struct {
	ID          string  `json:"id" yaml:"id"`
	Number      FlexInt `json:"number" yaml:"number"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	IconName    string  `json:"iconName" yaml:"iconName"`
}

// Normalize validates raw and returns an immutable Document.
//
// Text is trimmed and NFC-normalized. Steps with neither title nor
// description are dropped; if none remain the result is NoStepsFound.
// Missing or duplicate step IDs are replaced, and a non-positive number is
// replaced by the step's position.
func Normalize(raw Raw) (*Document, error) {
	doc := &Document{
		Title:    clean(raw.Title),
		Subtitle: clean(raw.Subtitle),
	}

	seen := make(map[string]bool, len(raw.Steps))
	for _, rs := range raw.Steps {
		st := Step{
			ID:          clean(rs.ID),
			Number:      int(rs.Number),
			Title:       clean(rs.Title),
			Description: clean(rs.Description),
			IconName:    clean(rs.IconName),
		}
		if st.Title == "" && st.Description == "" {
			continue
		}
		pos := len(doc.Steps) + 1
		if st.ID == "" || seen[st.ID] {
			st.ID = stepID(pos, seen)
		}
		seen[st.ID] = true
		if st.Number <= 0 {
			st.Number = pos
		}
		st.Icon = icon.Resolve(st.IconName)
		doc.Steps = append(doc.Steps, st)
	}

	if len(doc.Steps) == 0 {
		return nil, apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)
	}
	if doc.Title == "" {
		return nil, apperr.New(apperr.UpstreamMalformed, apperr.CodeMalformedResponse, apperr.MsgParsingFailed)
	}
	return doc, nil
}

// Validate checks the invariants renderers rely on. Documents built by
// Normalize always pass.
func (d *Document) Validate() error {
	if d == nil || len(d.Steps) == 0 {
		return apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)
	}
	ids := make(map[string]bool, len(d.Steps))
	for _, st := range d.Steps {
		if ids[st.ID] {
			return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, "duplicate step id "+strconv.Quote(st.ID))
		}
		ids[st.ID] = true
	}
	return nil
}

// Raw converts the document back to its loose form, e.g. to re-normalize a
// document decoded without icon resolution.
func (d *Document) Raw() Raw {
	r := Raw{Title: d.Title, Subtitle: d.Subtitle, Steps: make([]RawStep, len(d.Steps))}
	for i, st := range d.Steps {
		r.Steps[i] = RawStep{
			ID:          st.ID,
			Number:      FlexInt(st.Number),
			Title:       st.Title,
			Description: st.Description,
			IconName:    st.IconName,
		}
	}
	return r
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := *d
	c.Steps = append([]Step(nil), d.Steps...)
	return &c
}

// FirstWord returns the first whitespace-delimited word of the title.
func (d *Document) FirstWord() string {
	f := strings.Fields(d.Title)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// clean trims, folds line endings to \n, drops control characters other than
// tab and newline, and applies NFC.
func clean(s string) string {
	s = newlines.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		if r == 0xFFFE || r == 0xFFFF {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(norm.NFC.String(s))
}

func stepID(pos int, seen map[string]bool) string {
	id := "step-" + strconv.Itoa(pos)
	if !seen[id] {
		return id
	}
	return "step-" + uuid.NewString()[:8]
}
