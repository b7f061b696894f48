package viewstate

import (
	"net/url"
	"sync"

	"github.com/hyperjump/legisview/internal/models"
)

// URL parameter names owned by the search page.
const (
	ParamQueryText    = "queryText"
	ParamDocumentType = "documentType"
)

// Query is the last submitted search. An empty field means "not set".
type Query struct {
	Text         string
	DocumentType string
}

// IsZero reports whether nothing has been submitted.
func (q Query) IsZero() bool {
	return q.Text == "" && q.DocumentType == ""
}

// Values encodes q as the canonical /search URL parameters. An unset facet is
// encoded as the default.
func (q Query) Values() url.Values {
	dt := q.DocumentType
	if dt == "" {
		dt = string(models.DefaultDocumentType)
	}
	return url.Values{
		ParamQueryText:    {q.Text},
		ParamDocumentType: {dt},
	}
}

// SearchPath is the canonical navigation target for q.
func (q Query) SearchPath() string {
	return "/search?" + q.Values().Encode()
}

// QueryStore buffers the query between a form post and the navigation it causes.
type QueryStore struct {
	mu sync.RWMutex
	q  Query
}

// Submit replaces the stored query as a whole.
func (s *QueryStore) Submit(q Query) {
	s.mu.Lock()
	s.q = q
	s.mu.Unlock()
}

// Current returns the stored query.
func (s *QueryStore) Current() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q
}

// QueryView is what the search page displays. It is derived from the URL; the
// store only fills in what the URL does not carry.
type QueryView struct {
	Text         string
	DocumentType string
	// Requested is true when the URL asks for results, i.e. carries queryText.
	Requested bool
}

// ResolveQuery derives the displayed query. A URL carrying queryText is
// authoritative for both fields (a missing facet is the default). Otherwise the
// store's last submission is shown and no results are requested.
func ResolveQuery(values url.Values, store *QueryStore) QueryView {
	if _, ok := values[ParamQueryText]; ok {
		dt := values.Get(ParamDocumentType)
		if dt == "" {
			dt = string(models.DefaultDocumentType)
		}
		return QueryView{
			Text:         values.Get(ParamQueryText),
			DocumentType: dt,
			Requested:    true,
		}
	}
	var q Query
	if store != nil {
		q = store.Current()
	}
	dt := q.DocumentType
	if dt == "" {
		dt = values.Get(ParamDocumentType)
	}
	if dt == "" {
		dt = string(models.DefaultDocumentType)
	}
	return QueryView{Text: q.Text, DocumentType: dt}
}
