package page

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/legisview/internal/loader"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/viewstate"
)

func strPtr(s string) *string { return &s }

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func sampleHansard() *models.Hansard {
	return &models.Hansard{
		ID:      3,
		Present: []models.Person{{Name: "Ali"}},
		Officer: []models.Person{{}},
		Debate: []models.Debate{
			{Type: models.DebateSpeech, Speech: &models.Speech{
				By: &models.Person{Name: "Tuan Speaker", ImageURL: "/img/speaker.jpg"},
				ContentList: []models.ContentElement{
					{ID: 1, Value: "Ahli-ahli Yang Berhormat", Image: strPtr("AAAA")},
					{ID: 2, Value: ""},
				},
			}},
			{Type: models.DebateQuestionSession, Session: &models.QuestionSession{
				Questions: []models.Question{
					{Inquirer: &models.Person{Name: "Ali"}, ContentList: []models.ContentElement{{ID: 10, Value: "q1"}}},
					{Inquirer: nil, ContentList: []models.ContentElement{{ID: 11, Value: "q2"}}},
				},
				Answers: []models.Answer{
					{Respondent: &models.Person{Name: "Menteri"}, ContentList: []models.ContentElement{{ID: 20, Value: "a1"}}},
				},
			}},
		},
	}
}

func anchorsOf(groups []Group) []string {
	var out []string
	for _, g := range groups {
		for _, r := range g.Rows {
			for _, u := range r.Units {
				out = append(out, u.Anchor)
			}
		}
	}
	return out
}

func TestNewTranscript_order(t *testing.T) {
	state := viewstate.New()
	v := NewTranscript(sampleHansard(), state, mustURL(t, "https://example.com/hansard/3"))

	assert.Equal(t, "Hansard #3", v.Title)
	assert.Equal(t, []string{
		"hansard-ucapan-1",
		"hansard-ucapan-2",
		"hansard-pertanyaan-10",
		"hansard-pertanyaan-11",
		"hansard-jawapan-20",
	}, anchorsOf(v.Groups))

	speech := v.Groups[0]
	assert.Equal(t, "Tuan Speaker", speech.Name)
	assert.Equal(t, "/img/speaker.jpg", speech.Avatar.ImageURL)
	assert.True(t, speech.Rows[0].Units[0].ShowName)
	assert.False(t, speech.Rows[1].Units[0].ShowName)
	assert.Equal(t, models.Placeholder, speech.Rows[1].Units[0].Text)
	assert.Equal(t, models.Placeholder, v.Groups[2].Name)
	assert.Equal(t, "https://example.com/hansard/3#hansard-ucapan-1", speech.Rows[0].Units[0].ShareURL)
	assert.Equal(t, "Ali", v.Groups[1].Name)
	assert.Equal(t, "Menteri", v.Groups[3].Name)
}

func TestNewTranscript_displayModes(t *testing.T) {
	state := viewstate.New()
	state.DisplayModes.Toggle("hansard-ucapan-1")
	state.DisplayModes.Toggle("hansard-ucapan-2")

	v := NewTranscript(sampleHansard(), state, mustURL(t, "/hansard/3"))
	withImage := v.Groups[0].Rows[0].Units[0]
	assert.False(t, withImage.ShowText)
	assert.True(t, withImage.CanToggle)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", string(withImage.ImageSrc))

	withoutImage := v.Groups[0].Rows[1].Units[0]
	assert.False(t, withoutImage.CanToggle)
	assert.True(t, withoutImage.ShowText)
}

func TestNewTranscript_attendance(t *testing.T) {
	v := NewTranscript(sampleHansard(), viewstate.New(), mustURL(t, "/hansard/3"))
	require.Len(t, v.Attendance, 2)
	assert.Equal(t, "Ahli Yang Hadir", v.Attendance[0].Label)
	assert.Equal(t, []string{"Ali"}, v.Attendance[0].Names)
	assert.Equal(t, []string{models.Placeholder}, v.Attendance[1].Names)
}

func TestNewTranscript_scrollsToPendingFragmentOnce(t *testing.T) {
	state := viewstate.New()
	state.SetPendingFragment("hansard-jawapan-20")

	v := NewTranscript(sampleHansard(), state, mustURL(t, "/hansard/3"))
	assert.Equal(t, "hansard-jawapan-20", v.ScrollTo)

	state.SetPendingFragment("hansard-jawapan-20")
	v = NewTranscript(sampleHansard(), state, mustURL(t, "/hansard/3"))
	assert.Empty(t, v.ScrollTo)

	state.SetPendingFragment("hansard-jawapan-999")
	v = NewTranscript(sampleHansard(), state, mustURL(t, "/hansard/3"))
	assert.Empty(t, v.ScrollTo)
}

func sampleInquiry() *models.Inquiry {
	return &models.Inquiry{
		ID:       7,
		IsOral:   true,
		Number:   3,
		Title:    strPtr("Banjir di Hulu"),
		Inquirer: &models.Person{Name: "Ali"},
		Inquiries: []models.ContentElementList{
			{ContentList: []models.ContentElement{{ID: 12, Value: "Soalan"}, {ID: 13, Value: "Susulan", Image: strPtr("BBBB")}}},
			{ContentList: []models.ContentElement{{ID: 14, Value: "Lagi"}}},
		},
		Respondent: &models.Person{Name: "Menteri"},
		Responds: []models.ContentElementList{
			{ContentList: []models.ContentElement{{ID: 30, Value: "Jawapan"}}},
		},
	}
}

func TestNewInquiry(t *testing.T) {
	v := NewInquiry(sampleInquiry(), viewstate.New(), mustURL(t, "https://example.com/inquiry/7"))

	assert.Equal(t, "Pertanyaan Mulut #3", v.Heading)
	assert.Equal(t, "Banjir di Hulu", v.Title)
	assert.Equal(t, []string{
		"inquiry-pertanyaan-12",
		"inquiry-pertanyaan-13",
		"inquiry-pertanyaan-14",
		"inquiry-jawapan-30",
	}, anchorsOf(v.Groups))

	log := v.Groups[0]
	assert.True(t, log.Rows[0].Units[0].ShowName)
	assert.False(t, log.Rows[0].Units[1].ShowName)
	assert.False(t, log.Rows[1].Units[0].ShowName)
	assert.Equal(t, "https://example.com/inquiry/7#inquiry-pertanyaan-12", log.Rows[0].Units[0].ShareURL)
}

func TestNewInquiry_toggleGatedOnImage(t *testing.T) {
	v := NewInquiry(sampleInquiry(), viewstate.New(), mustURL(t, "/inquiry/7"))
	units := v.Groups[0].Rows[0].Units
	assert.Equal(t, "inquiry-pertanyaan-12", units[0].Anchor)
	assert.False(t, units[0].CanToggle)
	assert.True(t, units[1].CanToggle)
}

func TestNewInquiry_missingPeopleAndTitle(t *testing.T) {
	inq := sampleInquiry()
	inq.IsOral = false
	inq.Title = nil
	inq.Respondent = nil

	v := NewInquiry(inq, viewstate.New(), mustURL(t, "/inquiry/7"))
	assert.Equal(t, "Pertanyaan Bertulis #3", v.Heading)
	assert.Equal(t, models.Placeholder, v.Title)
	require.Len(t, v.Groups, 1)
	assert.False(t, v.Has("inquiry-jawapan-30"))
	assert.True(t, v.Has("inquiry-pertanyaan-14"))
}

func TestNewInquiryList(t *testing.T) {
	l := NewInquiryList([]models.Inquiry{
		{ID: 1, Number: 10, IsOral: true, Title: strPtr("A")},
		{ID: 2, Number: 11},
	})
	assert.Equal(t, []Link{{Label: "#10 - A", Href: "/inquiry/1"}}, l.Oral)
	assert.Equal(t, []Link{{Label: "#11 - " + models.Placeholder, Href: "/inquiry/2"}}, l.Written)
}

func TestNewHansardList(t *testing.T) {
	l := NewHansardList([]models.HansardSummary{{ID: 2}, {ID: 1}})
	assert.Equal(t, []Link{{"Hansard #2", "/hansard/2"}, {"Hansard #1", "/hansard/1"}}, l.Items)
}

func TestNewSearch(t *testing.T) {
	d := search.NewDispatcher(nil)

	t.Run("no query", func(t *testing.T) {
		s := NewSearch(&loader.SearchData{Query: viewstate.QueryView{DocumentType: "inquiry-title"}}, d)
		assert.Empty(t, s.Heading)
		assert.Equal(t, search.StateNoData, s.Result.State)
		require.Len(t, s.Tabs, len(models.DocumentTypes))
		assert.True(t, s.Tabs[0].Active)
	})

	t.Run("tabs carry resolved text", func(t *testing.T) {
		q := viewstate.QueryView{Text: "banjir", DocumentType: "speech", Requested: true}
		s := NewSearch(&loader.SearchData{Query: q, Results: &search.Results{Requested: models.HansardSpeech}}, d)
		assert.Equal(t, "Search result for banjir", s.Heading)
		assert.Equal(t, search.StateEmpty, s.Result.State)
		for _, tab := range s.Tabs {
			assert.Equal(t, "banjir", tab.Text)
			assert.Equal(t, tab.DocumentType == "speech", tab.Active)
		}
	})

	t.Run("unsupported facet", func(t *testing.T) {
		q := viewstate.QueryView{Text: "banjir", DocumentType: "people", Requested: true}
		s := NewSearch(&loader.SearchData{Query: q, Unsupported: true}, d)
		assert.Equal(t, search.StateUnsupported, s.Result.State)
	})
}
