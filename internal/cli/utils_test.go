package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
)

func sampleView() search.View {
	return search.View{
		State:        search.StatePopulated,
		DocumentType: "speech",
		Items: []search.Item{{
			DocumentType: models.HansardSpeech,
			Link:         "/hansard/3#hansard-ucapan-9",
			Label:        "Hansard #3",
			Context:      "#ucapan",
			Person:       "Ali",
			Snippet:      "Tuan Yang\n Dipertua, " + strings.Repeat("banjir ", 60),
		}},
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, "banjir", sampleView(), "https://legis.example.com/", OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded jsonView
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Query != "banjir" || decoded.State != "populated" {
		t.Errorf("decoded query=%q state=%q", decoded.Query, decoded.State)
	}
	if len(decoded.Items) != 1 {
		t.Fatalf("items: got %d", len(decoded.Items))
	}
	if got := decoded.Items[0].Link; got != "https://legis.example.com/hansard/3#hansard-ucapan-9" {
		t.Errorf("link = %s", got)
	}
	if !strings.HasPrefix(decoded.Items[0].Snippet, "Tuan Yang Dipertua, banjir") {
		t.Errorf("snippet whitespace not collapsed: %q", decoded.Items[0].Snippet)
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, "banjir", sampleView(), "", OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Search result for banjir (speech): 1", "1. Hansard #3", "Ali | #ucapan", "/hansard/3#hansard-ucapan-9", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResults_TextStates(t *testing.T) {
	tests := []struct {
		state search.State
		want  string
	}{
		{search.StateEmpty, `No result for "banjir" in answer`},
		{search.StateNoData, `No result for "banjir" in answer`},
		{search.StateUnsupported, `Unsupported document type "answer"`},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		view := search.View{State: tt.state, DocumentType: "answer"}
		if err := WriteSearchResults(&buf, "banjir", view, "", OutputText); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("state %s: output %q missing %q", tt.state, buf.String(), tt.want)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]SearchOutputFormat{"": OutputText, "text": OutputText, "JSON": OutputJSON} {
		got, err := ParseOutputFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
