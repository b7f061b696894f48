package models

import (
	"fmt"
	"net/url"
)

// DocumentType is the search facet; it names both the upstream index and the
// shape of the records it returns.
type DocumentType string

const (
	InquiryTitle    DocumentType = "inquiry-title"
	InquiryContent  DocumentType = "inquiry"
	InquiryRespond  DocumentType = "respond"
	HansardQuestion DocumentType = "question"
	HansardAnswer   DocumentType = "answer"
	HansardSpeech   DocumentType = "speech"
)

// DefaultDocumentType is used when a query does not name a facet.
const DefaultDocumentType = InquiryTitle

// DocumentTypes lists the facets in tab order.
var DocumentTypes = []DocumentType{
	InquiryTitle, InquiryContent, InquiryRespond, HansardQuestion, HansardAnswer, HansardSpeech,
}

var documentTypeTitles = map[DocumentType]string{
	InquiryTitle:    "Inquiry Title",
	InquiryContent:  "Inquiry Content",
	InquiryRespond:  "Inquiry Respond",
	HansardQuestion: "Hansard Question",
	HansardAnswer:   "Hansard Answer",
	HansardSpeech:   "Hansard Speech",
}

// Title is the tab label for the facet.
func (d DocumentType) Title() string {
	return documentTypeTitles[d]
}

// Valid reports whether d is one of the six known facets.
func (d DocumentType) Valid() bool {
	_, ok := documentTypeTitles[d]
	return ok
}

// ParseDocumentType returns the facet for s; empty selects the default.
func ParseDocumentType(s string) (DocumentType, error) {
	if s == "" {
		return DefaultDocumentType, nil
	}
	d := DocumentType(s)
	if !d.Valid() {
		return "", fmt.Errorf("unsupported document type %q", s)
	}
	return d, nil
}

// SearchQuery is a request to the upstream search endpoint.
type SearchQuery struct {
	Query        string       `json:"query"`
	DocumentType DocumentType `json:"document_type"`
}

// Validate ensures the query has text and a known facet, defaulting the facet.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.DocumentType == "" {
		q.DocumentType = DefaultDocumentType
	}
	if !q.DocumentType.Valid() {
		return fmt.Errorf("unsupported document type %q", q.DocumentType)
	}
	return nil
}

// Values encodes the query as upstream URL parameters.
func (q SearchQuery) Values() url.Values {
	return url.Values{
		"query":         {q.Query},
		"document_type": {string(q.DocumentType)},
	}
}
