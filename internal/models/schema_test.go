package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hansardJSON = `{
  "id": 3,
  "present": [{"name": "Ahmad", "raw": "Tuan Ahmad", "title": ["Tuan"], "area": null, "role": null}],
  "debate": [
    {"type": "Speech", "value": {"by": {"name": "Siti", "raw": "Puan Siti", "title": []}, "role": null,
      "content_list": [{"id": 42, "type": "text", "value": "Terima kasih.", "image": "aGVsbG8="}]}},
    {"type": "QuestionSession", "value": {
      "questions": [{"inquirer": {"name": "Ahmad", "raw": "Ahmad", "title": []}, "role": null, "is_oral": true,
        "content_list": [{"id": 5, "type": "text", "value": "Soalan", "image": null}]}],
      "answers": [{"respondent": {"name": "Menteri", "raw": "Menteri", "title": []}, "role": null,
        "content_list": [{"id": 6, "type": "text", "value": "Jawapan", "image": null}]}]}}
  ]
}`

func TestHansard_decode(t *testing.T) {
	var h Hansard
	require.NoError(t, json.Unmarshal([]byte(hansardJSON), &h))
	require.Len(t, h.Debate, 2)

	speech := h.Debate[0]
	require.NotNil(t, speech.Speech)
	assert.Nil(t, speech.Session)
	assert.Equal(t, "Siti", speech.Speech.By.Name)
	assert.True(t, speech.Speech.ContentList[0].HasImage())

	session := h.Debate[1]
	require.NotNil(t, session.Session)
	assert.Equal(t, int64(5), session.Session.Questions[0].ContentList[0].ID)
	assert.False(t, session.Session.Answers[0].ContentList[0].HasImage())
	assert.Equal(t, "", h.Present[0].Area)
}

func TestDebate_unknownType(t *testing.T) {
	var d Debate
	err := json.Unmarshal([]byte(`{"type": "Motion", "value": {}}`), &d)
	assert.ErrorIs(t, err, ErrUnknownDebateType)
}

func TestDebate_marshalRoundTrip(t *testing.T) {
	var h Hansard
	require.NoError(t, json.Unmarshal([]byte(hansardJSON), &h))
	data, err := json.Marshal(h)
	require.NoError(t, err)
	var again Hansard
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, h, again)
}

func TestPlaceholders(t *testing.T) {
	var p *Person
	assert.Equal(t, Placeholder, p.DisplayName())
	assert.Equal(t, Placeholder, (&Person{}).DisplayName())
	assert.Equal(t, "Ahmad", (&Person{Name: "Ahmad"}).DisplayName())

	assert.Equal(t, Placeholder, Inquiry{}.DisplayTitle())
	title := "Banjir"
	assert.Equal(t, "Banjir", Inquiry{Title: &title}.DisplayTitle())
}
