package page

import (
	"net/url"
	"strconv"

	"github.com/hyperjump/legisview/internal/anchor"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/viewstate"
)

// Inquiry is the view model of /inquiry/{id}.
type Inquiry struct {
	ID       int64
	Heading  string
	Title    string
	Oral     bool
	Groups   []Group
	ScrollTo string

	anchors anchorSet
}

// Has reports whether the inquiry renders an element with id.
func (i *Inquiry) Has(id string) bool { return i.anchors.Has(id) }

// InquiryHeading is "Pertanyaan Mulut #n" or "Pertanyaan Bertulis #n".
func InquiryHeading(oral bool, number int64) string {
	kind := "Bertulis"
	if oral {
		kind = "Mulut"
	}
	return "Pertanyaan " + kind + " #" + strconv.FormatInt(number, 10)
}

// NewInquiry builds the inquiry view. A log is rendered only when the person it
// is attributed to is known.
func NewInquiry(inq *models.Inquiry, state *viewstate.State, pageURL *url.URL) *Inquiry {
	b := newBuilder(anchor.Inquiry, state, pageURL)
	v := &Inquiry{
		ID:      inq.ID,
		Heading: InquiryHeading(inq.IsOral, inq.Number),
		Title:   inq.DisplayTitle(),
		Oral:    inq.IsOral,
	}
	if inq.Inquirer != nil {
		v.Groups = append(v.Groups, b.log(anchor.Question, inq.Inquirer, inq.Inquiries))
	}
	if inq.Respondent != nil {
		v.Groups = append(v.Groups, b.log(anchor.Answer, inq.Respondent, inq.Responds))
	}
	v.anchors = b.anchors
	v.ScrollTo = scrollTarget(state, v)
	return v
}

// log keeps the paragraph grouping of the source; the name goes on the very
// first unit only.
func (b *builder) log(contentType string, p *models.Person, rows []models.ContentElementList) Group {
	g := Group{
		Name:   p.DisplayName(),
		Avatar: avatarOf(p),
		Rows:   make([]Row, 0, len(rows)),
	}
	for ri, row := range rows {
		r := Row{Units: make([]Unit, 0, len(row.ContentList))}
		for ci, c := range row.ContentList {
			r.Units = append(r.Units, b.unit(contentType, c, g.Name, ri == 0 && ci == 0))
		}
		g.Rows = append(g.Rows, r)
	}
	return g
}
