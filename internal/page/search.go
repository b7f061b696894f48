package page

import (
	"github.com/hyperjump/legisview/internal/loader"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/viewstate"
)

// Tab is one facet of the search tab strip. Selecting it posts Text and
// DocumentType to /search/facet.
type Tab struct {
	DocumentType string
	Title        string
	Text         string
	Active       bool
}

// Search is the view model of /search.
type Search struct {
	Query   viewstate.QueryView
	Heading string
	Tabs    []Tab
	Result  search.View
}

// NewSearch builds the search view from a completed search load.
func NewSearch(data *loader.SearchData, d *search.Dispatcher) *Search {
	s := &Search{Query: data.Query}
	if data.Query.Text != "" {
		s.Heading = "Search result for " + data.Query.Text
	}
	for _, dt := range models.DocumentTypes {
		s.Tabs = append(s.Tabs, Tab{
			DocumentType: string(dt),
			Title:        dt.Title(),
			Text:         data.Query.Text,
			Active:       string(dt) == data.Query.DocumentType,
		})
	}
	if data.Unsupported {
		s.Result = search.View{State: search.StateUnsupported, DocumentType: data.Query.DocumentType}
		return s
	}
	s.Result = d.Dispatch(data.Query.DocumentType, data.Results)
	return s
}
