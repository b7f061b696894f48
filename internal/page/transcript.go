package page

import (
	"net/url"
	"strconv"

	"github.com/hyperjump/legisview/internal/anchor"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/viewstate"
)

// Attendance is one roll of a sitting.
type Attendance struct {
	Label string
	Names []string
}

// Transcript is the view model of /hansard/{id}.
type Transcript struct {
	ID         int64
	Title      string
	Groups     []Group
	Attendance []Attendance
	ScrollTo   string

	anchors anchorSet
}

// Has reports whether the transcript renders an element with id.
func (t *Transcript) Has(id string) bool { return t.anchors.Has(id) }

// NewTranscript builds the transcript view. Speeches render in order; a question
// session renders all of its questions, then all of its answers.
func NewTranscript(h *models.Hansard, state *viewstate.State, pageURL *url.URL) *Transcript {
	b := newBuilder(anchor.Hansard, state, pageURL)
	t := &Transcript{
		ID:    h.ID,
		Title: "Hansard #" + strconv.FormatInt(h.ID, 10),
	}

	for _, d := range h.Debate {
		switch {
		case d.Speech != nil:
			t.Groups = append(t.Groups, b.group(anchor.Speech, d.Speech.By, d.Speech.ContentList))
		case d.Session != nil:
			for _, q := range d.Session.Questions {
				t.Groups = append(t.Groups, b.group(anchor.Question, q.Inquirer, q.ContentList))
			}
			for _, a := range d.Session.Answers {
				t.Groups = append(t.Groups, b.group(anchor.Answer, a.Respondent, a.ContentList))
			}
		}
	}

	t.Attendance = attendance(h)
	t.anchors = b.anchors
	t.ScrollTo = scrollTarget(state, t)
	return t
}

// group lays out each unit on its own row; the name goes on the first.
func (b *builder) group(contentType string, p *models.Person, list []models.ContentElement) Group {
	g := Group{
		Name:   p.DisplayName(),
		Avatar: avatarOf(p),
		Rows:   make([]Row, 0, len(list)),
	}
	for i, c := range list {
		g.Rows = append(g.Rows, Row{Units: []Unit{b.unit(contentType, c, g.Name, i == 0)}})
	}
	return g
}

func attendance(h *models.Hansard) []Attendance {
	rolls := []struct {
		label  string
		people []models.Person
	}{
		{"Ahli Yang Hadir", h.Present},
		{"Ahli Yang Tidak Hadir", h.Absent},
		{"Turut Hadir", h.Guest},
		{"Pegawai Bertugas", h.Officer},
	}
	var out []Attendance
	for _, r := range rolls {
		if len(r.people) == 0 {
			continue
		}
		a := Attendance{Label: r.label, Names: make([]string, 0, len(r.people))}
		for i := range r.people {
			a.Names = append(a.Names, r.people[i].DisplayName())
		}
		out = append(out, a)
	}
	return out
}
