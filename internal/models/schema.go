// Package models defines the archive records served by the upstream API and the
// search query sent to it.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownDebateType is returned when a debate entry carries a type tag other
// than Speech or QuestionSession.
var ErrUnknownDebateType = errors.New("unknown debate type")

// Placeholder is shown in place of a missing name, title or text.
const Placeholder = "<TIDAK TERJUMPA>"

// Person is a member, officer or guest a content unit is attributed to.
type Person struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name"`
	Raw      string   `json:"raw"`
	Title    []string `json:"title"`
	Area     string   `json:"area,omitempty"`
	Role     string   `json:"role,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// DisplayName returns the person's name or Placeholder. Safe on nil.
func (p *Person) DisplayName() string {
	if p == nil || p.Name == "" {
		return Placeholder
	}
	return p.Name
}

// ContentElement is one quotable unit: a paragraph of text and, when the source
// was scanned, the JPEG of that paragraph encoded as base64.
type ContentElement struct {
	ID    int64   `json:"id"`
	Type  string  `json:"type"`
	Value string  `json:"value"`
	Image *string `json:"image"`
}

// HasImage reports whether the unit can be shown in image mode.
func (c ContentElement) HasImage() bool {
	return c.Image != nil && *c.Image != ""
}

// Speech is an uninterrupted turn by one speaker.
type Speech struct {
	By          *Person          `json:"by"`
	Role        string           `json:"role,omitempty"`
	ContentList []ContentElement `json:"content_list"`
}

// Question is a question put during a question session.
type Question struct {
	Inquirer    *Person          `json:"inquirer"`
	Role        string           `json:"role,omitempty"`
	ContentList []ContentElement `json:"content_list"`
	IsOral      *bool            `json:"is_oral,omitempty"`
}

// Answer is a reply given during a question session.
type Answer struct {
	Respondent  *Person          `json:"respondent"`
	Role        string           `json:"role,omitempty"`
	ContentList []ContentElement `json:"content_list"`
}

// QuestionSession groups the questions and answers of one item of business.
type QuestionSession struct {
	Questions []Question `json:"questions"`
	Answers   []Answer   `json:"answers"`
}

// Debate type tags as sent by the upstream API.
const (
	DebateSpeech          = "Speech"
	DebateQuestionSession = "QuestionSession"
)

// Debate is a tagged union: exactly one of Speech or Session is set, matching Type.
type Debate struct {
	Type    string
	Speech  *Speech
	Session *QuestionSession
}

type debateWire struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// UnmarshalJSON decodes {"type": ..., "value": ...} into the matching variant.
func (d *Debate) UnmarshalJSON(data []byte) error {
	var w debateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case DebateSpeech:
		var s Speech
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return fmt.Errorf("failed to decode speech: %w", err)
		}
		*d = Debate{Type: w.Type, Speech: &s}
	case DebateQuestionSession:
		var q QuestionSession
		if err := json.Unmarshal(w.Value, &q); err != nil {
			return fmt.Errorf("failed to decode question session: %w", err)
		}
		*d = Debate{Type: w.Type, Session: &q}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDebateType, w.Type)
	}
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (d Debate) MarshalJSON() ([]byte, error) {
	var value interface{}
	switch {
	case d.Speech != nil:
		value = d.Speech
	case d.Session != nil:
		value = d.Session
	}
	return json.Marshal(struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}{d.Type, value})
}

// HansardSummary is one row of /api/hansard.json.
type HansardSummary struct {
	ID int64 `json:"id"`
}

// Hansard is a full transcript of one sitting.
type Hansard struct {
	ID      int64    `json:"id"`
	Present []Person `json:"present,omitempty"`
	Absent  []Person `json:"absent,omitempty"`
	Guest   []Person `json:"guest,omitempty"`
	Officer []Person `json:"officer,omitempty"`
	Debate  []Debate `json:"debate"`
}

// ContentElementList is one paragraph group of an inquiry or respond log.
type ContentElementList struct {
	ID          int64            `json:"id,omitempty"`
	ContentList []ContentElement `json:"content_list"`
}

// Inquiry is an oral or written question to the executive and its response.
// List endpoints omit Inquiries and Responds.
type Inquiry struct {
	ID         int64                `json:"id"`
	IsOral     bool                 `json:"is_oral"`
	Inquirer   *Person              `json:"inquirer"`
	Respondent *Person              `json:"respondent"`
	Number     int64                `json:"number"`
	Title      *string              `json:"title"`
	Inquiries  []ContentElementList `json:"inquiries,omitempty"`
	Responds   []ContentElementList `json:"responds,omitempty"`
	AKN        string               `json:"akn,omitempty"`
}

// DisplayTitle returns the title or Placeholder.
func (i Inquiry) DisplayTitle() string {
	if i.Title == nil || *i.Title == "" {
		return Placeholder
	}
	return *i.Title
}
