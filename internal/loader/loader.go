// Package loader fetches the data a page needs for one navigation. Pages never
// fetch on their own; they render what the loader returns.
package loader

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/metrics"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/viewstate"
)

// ErrSuperseded is returned when a newer navigation of the same session started
// while this one was loading. Its result must not be rendered.
var ErrSuperseded = errors.New("navigation superseded")

// Archive is the read-only source of archive records.
type Archive interface {
	HansardList(ctx context.Context) ([]models.HansardSummary, error)
	Hansard(ctx context.Context, id int64) (*models.Hansard, error)
	InquiryList(ctx context.Context) ([]models.Inquiry, error)
	Inquiry(ctx context.Context, id int64) (*models.Inquiry, error)
	Search(ctx context.Context, q models.SearchQuery) (*search.Results, error)
}

// Loader runs the per-route loads.
type Loader struct {
	archive Archive
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New returns a loader reading from archive.
func New(archive Archive, m *metrics.Metrics, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{archive: archive, metrics: m, logger: logger}
}

// HansardList loads the transcript index.
func (l *Loader) HansardList(ctx context.Context) ([]models.HansardSummary, error) {
	return l.archive.HansardList(ctx)
}

// Hansard loads one transcript.
func (l *Loader) Hansard(ctx context.Context, id int64) (*models.Hansard, error) {
	return l.archive.Hansard(ctx, id)
}

// InquiryList loads the inquiry index.
func (l *Loader) InquiryList(ctx context.Context) ([]models.Inquiry, error) {
	return l.archive.InquiryList(ctx)
}

// Inquiry loads one inquiry.
func (l *Loader) Inquiry(ctx context.Context, id int64) (*models.Inquiry, error) {
	return l.archive.Inquiry(ctx, id)
}

// SearchData is the outcome of a search navigation.
type SearchData struct {
	Query viewstate.QueryView
	// Results is nil when nothing was fetched.
	Results *search.Results
	// Unsupported is set when the URL names an unknown facet; nothing is fetched.
	Unsupported bool
}

// Search resolves the query shown by the search page from the URL (falling back
// to the session store) and fetches results only when the URL asks for them
// with non-empty text. Starting a search supersedes the session's previous one.
func (l *Loader) Search(ctx context.Context, state *viewstate.State, values url.Values) (*SearchData, error) {
	data := &SearchData{Query: viewstate.ResolveQuery(values, state.Query)}
	if !data.Query.Requested || data.Query.Text == "" {
		return data, nil
	}
	dt, err := models.ParseDocumentType(data.Query.DocumentType)
	if err != nil {
		data.Unsupported = true
		return data, nil
	}

	navCtx, ticket := state.Navigation.Begin(ctx)
	defer state.Navigation.Done(ticket)

	res, err := l.archive.Search(navCtx, models.SearchQuery{Query: data.Query.Text, DocumentType: dt})
	if !state.Navigation.Current(ticket) {
		l.metrics.LoadSuperseded()
		l.logger.Debug("search load superseded", zap.String("query", data.Query.Text))
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	data.Results = res
	return data, nil
}
