package loader

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/viewstate"
)

type fakeArchive struct {
	mu       sync.Mutex
	searches []models.SearchQuery
	// block, when set, holds searches for the given text until released.
	block   map[string]chan struct{}
	results *search.Results
}

func (f *fakeArchive) HansardList(context.Context) ([]models.HansardSummary, error) {
	return []models.HansardSummary{{ID: 1}}, nil
}

func (f *fakeArchive) Hansard(_ context.Context, id int64) (*models.Hansard, error) {
	return &models.Hansard{ID: id}, nil
}

func (f *fakeArchive) InquiryList(context.Context) ([]models.Inquiry, error) { return nil, nil }

func (f *fakeArchive) Inquiry(_ context.Context, id int64) (*models.Inquiry, error) {
	return &models.Inquiry{ID: id}, nil
}

func (f *fakeArchive) Search(ctx context.Context, q models.SearchQuery) (*search.Results, error) {
	f.mu.Lock()
	f.searches = append(f.searches, q)
	ch := f.block[q.Query]
	f.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.results != nil {
		return f.results, nil
	}
	return &search.Results{Requested: q.DocumentType}, nil
}

func (f *fakeArchive) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func TestSearch_noQueryTextDoesNotFetch(t *testing.T) {
	archive := &fakeArchive{}
	l := New(archive, nil, nil)

	data, err := l.Search(context.Background(), viewstate.New(), url.Values{})
	require.NoError(t, err)
	assert.Nil(t, data.Results)
	assert.False(t, data.Query.Requested)
	assert.Equal(t, 0, archive.searchCount())

	data, err = l.Search(context.Background(), viewstate.New(), url.Values{"queryText": {""}})
	require.NoError(t, err)
	assert.Nil(t, data.Results)
	assert.Equal(t, 0, archive.searchCount())
}

func TestSearch_fetchesFromURL(t *testing.T) {
	archive := &fakeArchive{}
	l := New(archive, nil, nil)

	data, err := l.Search(context.Background(), viewstate.New(),
		url.Values{"queryText": {"banjir"}, "documentType": {"question"}})
	require.NoError(t, err)
	require.NotNil(t, data.Results)
	assert.Equal(t, []models.SearchQuery{{Query: "banjir", DocumentType: models.HansardQuestion}}, archive.searches)
}

func TestSearch_unsupportedFacet(t *testing.T) {
	archive := &fakeArchive{}
	l := New(archive, nil, nil)

	data, err := l.Search(context.Background(), viewstate.New(),
		url.Values{"queryText": {"banjir"}, "documentType": {"people"}})
	require.NoError(t, err)
	assert.True(t, data.Unsupported)
	assert.Equal(t, 0, archive.searchCount())
}

func TestSearch_supersededLoadIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	archive := &fakeArchive{block: map[string]chan struct{}{"first": release}}
	l := New(archive, nil, nil)
	state := viewstate.New()

	errc := make(chan error, 1)
	go func() {
		_, err := l.Search(context.Background(), state, url.Values{"queryText": {"first"}})
		errc <- err
	}()
	require.Eventually(t, func() bool { return archive.searchCount() == 1 }, time.Second, time.Millisecond)

	data, err := l.Search(context.Background(), state, url.Values{"queryText": {"second"}})
	require.NoError(t, err)
	assert.Equal(t, "second", data.Query.Text)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded load did not return")
	}
	close(release)
}

func TestDocumentLoads(t *testing.T) {
	l := New(&fakeArchive{}, nil, nil)
	ctx := context.Background()

	h, err := l.Hansard(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), h.ID)

	list, err := l.HansardList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	inq, err := l.Inquiry(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), inq.ID)
}
