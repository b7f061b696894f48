package search

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperjump/legisview/internal/models"
)

var (
	// ErrUnknownDocumentType is returned for a facet or discriminant outside the six shapes.
	ErrUnknownDocumentType = errors.New("unknown document type")
	// ErrMixedResults is returned when the first record matches the requested
	// facet but a later one does not.
	ErrMixedResults = errors.New("search response mixes document types")
)

// Results is a decoded search response for one requested facet.
type Results struct {
	// Requested is the facet the response was fetched for.
	Requested models.DocumentType
	Records   []Record
	// Mismatch is set when the first record belongs to another facet. The
	// response is then treated as having no result for Requested.
	Mismatch bool
}

type decoder func(json.RawMessage) (Record, error)

func decodeAs[T Record](raw json.RawMessage) (Record, error) {
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

var decoders = map[models.DocumentType]decoder{
	models.InquiryTitle:    decodeAs[InquiryTitleRecord],
	models.InquiryContent:  decodeAs[InquiryContentRecord],
	models.InquiryRespond:  decodeAs[InquiryRespondRecord],
	models.HansardQuestion: decodeAs[HansardQuestionRecord],
	models.HansardAnswer:   decodeAs[HansardAnswerRecord],
	models.HansardSpeech:   decodeAs[HansardSpeechRecord],
}

type discriminantPeek struct {
	DocumentType string `json:"document_type"`
}

// Decode parses body, the JSON array returned by the upstream search endpoint
// for the requested facet.
//
// Responses are assumed homogeneous: only the first record's document_type
// decides whether the response answers the request. Every record is then
// decoded with the requested shape's decoder and a later record of another
// shape fails with ErrMixedResults rather than being rendered as the wrong shape.
func Decode(requested models.DocumentType, body []byte) (*Results, error) {
	decode, ok := decoders[requested]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, requested)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	res := &Results{Requested: requested}
	if len(raws) == 0 {
		return res, nil
	}

	var first discriminantPeek
	if err := json.Unmarshal(raws[0], &first); err != nil {
		return nil, fmt.Errorf("failed to decode search record 0: %w", err)
	}
	if !models.DocumentType(first.DocumentType).Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, first.DocumentType)
	}
	if models.DocumentType(first.DocumentType) != requested {
		res.Mismatch = true
		return res, nil
	}

	res.Records = make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode search record %d: %w", i, err)
		}
		if rec.discriminant() != string(requested) {
			return nil, fmt.Errorf("%w: record %d is %q, want %q", ErrMixedResults, i, rec.discriminant(), requested)
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}
