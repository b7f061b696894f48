// Package search decodes the upstream search response into typed records and
// dispatches them to the one rendering template each facet uses.
package search

import "github.com/hyperjump/legisview/internal/models"

// Record is one search hit. The concrete types are the six result shapes; the
// set is closed.
type Record interface {
	DocumentType() models.DocumentType
	discriminant() string
}

// PersonRef is the abbreviated person the search index stores.
type PersonRef struct {
	Name string `json:"name"`
	Raw  string `json:"raw"`
}

// DisplayName returns the name or the not-found marker.
func (p *PersonRef) DisplayName() string {
	if p == nil || p.Name == "" {
		return "TIDAK TERJUMPA"
	}
	return p.Name
}

// HansardRef points at the transcript a hit belongs to.
type HansardRef struct {
	ID int64 `json:"id"`
}

// InquiryRef points at the inquiry a hit belongs to.
type InquiryRef struct {
	ID     int64  `json:"id"`
	Number int64  `json:"number"`
	IsOral bool   `json:"is_oral"`
	Title  string `json:"title"`
}

// ContentHit is a matched content unit. Highlight, when present, is markup
// produced by the search backend.
type ContentHit struct {
	ID        int64   `json:"id"`
	Highlight *string `json:"highlight"`
	Value     string  `json:"value"`
}

// TitleHit is a matched inquiry title.
type TitleHit struct {
	ID        int64   `json:"id"`
	Number    int64   `json:"number"`
	Title     string  `json:"title"`
	Highlight *string `json:"highlight"`
	IsOral    bool    `json:"is_oral"`
}

// InquiryTitleRecord is a hit from the inquiry-title index.
type InquiryTitleRecord struct {
	Type       string     `json:"document_type"`
	Content    TitleHit   `json:"content"`
	Inquirer   *PersonRef `json:"inquirer"`
	Respondent *PersonRef `json:"respondent"`
}

// InquiryHit is the body shared by the inquiry and respond shapes.
type InquiryHit struct {
	Type    string     `json:"document_type"`
	Inquiry InquiryRef `json:"inquiry"`
	Content ContentHit `json:"content"`
	Person  *PersonRef `json:"person"`
}

// HansardHit is the body shared by the question, answer and speech shapes.
type HansardHit struct {
	Type    string     `json:"document_type"`
	Hansard HansardRef `json:"hansard"`
	Content ContentHit `json:"content"`
	Person  *PersonRef `json:"person"`
}

// InquiryContentRecord is a paragraph of an inquiry.
type InquiryContentRecord struct{ InquiryHit }

// InquiryRespondRecord is a paragraph of the response to an inquiry.
type InquiryRespondRecord struct{ InquiryHit }

// HansardQuestionRecord is a question asked in a sitting.
type HansardQuestionRecord struct{ HansardHit }

// HansardAnswerRecord is an answer given in a sitting.
type HansardAnswerRecord struct{ HansardHit }

// HansardSpeechRecord is a speech made in a sitting.
type HansardSpeechRecord struct{ HansardHit }

func (InquiryTitleRecord) DocumentType() models.DocumentType    { return models.InquiryTitle }
func (InquiryContentRecord) DocumentType() models.DocumentType  { return models.InquiryContent }
func (InquiryRespondRecord) DocumentType() models.DocumentType  { return models.InquiryRespond }
func (HansardQuestionRecord) DocumentType() models.DocumentType { return models.HansardQuestion }
func (HansardAnswerRecord) DocumentType() models.DocumentType   { return models.HansardAnswer }
func (HansardSpeechRecord) DocumentType() models.DocumentType   { return models.HansardSpeech }

func (r InquiryTitleRecord) discriminant() string { return r.Type }
func (r InquiryHit) discriminant() string         { return r.Type }
func (r HansardHit) discriminant() string         { return r.Type }
