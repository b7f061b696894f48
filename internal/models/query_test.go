package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *SearchQuery
		wantErr bool
		want    DocumentType
	}{
		{"empty query", &SearchQuery{Query: ""}, true, ""},
		{"defaults facet", &SearchQuery{Query: "banjir"}, false, InquiryTitle},
		{"keeps facet", &SearchQuery{Query: "banjir", DocumentType: HansardSpeech}, false, HansardSpeech},
		{"rejects unknown facet", &SearchQuery{Query: "banjir", DocumentType: "people"}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.query.DocumentType)
		})
	}
}

func TestSearchQuery_Values(t *testing.T) {
	q := SearchQuery{Query: "air & banjir", DocumentType: HansardQuestion}
	assert.Equal(t, "document_type=question&query=air+%26+banjir", q.Values().Encode())
}

func TestParseDocumentType(t *testing.T) {
	d, err := ParseDocumentType("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDocumentType, d)

	for _, dt := range DocumentTypes {
		got, err := ParseDocumentType(string(dt))
		require.NoError(t, err)
		assert.Equal(t, dt, got)
		assert.NotEmpty(t, got.Title())
	}

	_, err = ParseDocumentType("hansard")
	assert.Error(t, err)
}
