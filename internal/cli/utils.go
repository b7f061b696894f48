// Package cli formats legisview data for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat accepts "text" or "json"; empty selects text.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch SearchOutputFormat(strings.ToLower(s)) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

type jsonItem struct {
	DocumentType string `json:"document_type"`
	Link         string `json:"link"`
	Label        string `json:"label"`
	Context      string `json:"context"`
	Person       string `json:"person"`
	Snippet      string `json:"snippet,omitempty"`
}

type jsonView struct {
	Query        string     `json:"query"`
	DocumentType string     `json:"document_type"`
	State        string     `json:"state"`
	Items        []jsonItem `json:"items"`
}

// WriteSearchResults writes a dispatched search view to w. Links are made
// absolute against baseURL when it is non-empty.
func WriteSearchResults(w io.Writer, query string, view search.View, baseURL string, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		out := jsonView{
			Query:        query,
			DocumentType: view.DocumentType,
			State:        view.State.String(),
			Items:        make([]jsonItem, 0, len(view.Items)),
		}
		for _, it := range view.Items {
			out.Items = append(out.Items, jsonItem{
				DocumentType: string(it.DocumentType),
				Link:         absolute(baseURL, it.Link),
				Label:        it.Label,
				Context:      it.Context,
				Person:       it.Person,
				Snippet:      utils.CollapseSpace(it.Snippet),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		writeSearchResultsText(w, query, view, baseURL)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, query string, view search.View, baseURL string) {
	switch view.State {
	case search.StateUnsupported:
		fmt.Fprintf(w, "\nUnsupported document type %q\n", view.DocumentType)
		return
	case search.StateNoData, search.StateEmpty:
		fmt.Fprintf(w, "\nNo result for %q in %s\n", query, view.DocumentType)
		return
	}
	fmt.Fprintf(w, "\nSearch result for %s (%s): %d\n\n", query, view.DocumentType, len(view.Items))
	for i, it := range view.Items {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. %s\n", i+1, it.Label)
		fmt.Fprintf(w, "   %s | %s\n", it.Person, it.Context)
		fmt.Fprintf(w, "   %s\n", absolute(baseURL, it.Link))
		if it.Snippet != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(utils.CollapseSpace(it.Snippet), 200))
		}
		fmt.Fprintln(w)
	}
}

func absolute(baseURL, link string) string {
	if baseURL == "" {
		return link
	}
	return strings.TrimSuffix(baseURL, "/") + link
}
