package search

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/hyperjump/legisview/internal/anchor"
	"github.com/hyperjump/legisview/internal/models"
)

// State is the outcome of dispatching a response.
type State int

const (
	// StateNoData means nothing was fetched: no query yet, or still loading.
	StateNoData State = iota
	// StateEmpty means the response has no result for the requested facet.
	StateEmpty
	// StatePopulated means Items holds one entry per record.
	StatePopulated
	// StateUnsupported means the requested facet is not one of the six shapes.
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateNoData:
		return "no-data"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateUnsupported:
		return "unsupported"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Template names the item layout a record renders with.
type Template string

const (
	TemplateInquiryTitle Template = "inquiry-title"
	TemplateInquiry      Template = "inquiry-content"
	TemplateHansard      Template = "hansard-content"
)

// Item is one rendered search hit.
type Item struct {
	Template     Template
	DocumentType models.DocumentType
	// Body is the matched passage; empty for title hits.
	Body template.HTML
	// Snippet is Body as plain text.
	Snippet string
	Link    string
	// LinkHTML is the link label; Label is the same as plain text.
	LinkHTML template.HTML
	Label    string
	// Context describes the owning document, e.g. "pertanyaan mulut".
	Context string
	Person  string
	Oral    bool
}

// View is what the search page renders below the tab strip.
type View struct {
	State        State
	DocumentType string
	Items        []Item
}

// Dispatcher selects the rendering path for a facet.
type Dispatcher struct {
	hl *Highlighter
}

// NewDispatcher returns a dispatcher using hl, or a default highlighter when nil.
func NewDispatcher(hl *Highlighter) *Dispatcher {
	if hl == nil {
		hl = NewHighlighter()
	}
	return &Dispatcher{hl: hl}
}

// Dispatch renders res for documentType. A nil res is StateNoData; a response
// whose first record belongs to another facet is StateEmpty.
func (d *Dispatcher) Dispatch(documentType string, res *Results) View {
	v := View{DocumentType: documentType}
	dt := models.DocumentType(documentType)
	switch {
	case !dt.Valid():
		v.State = StateUnsupported
	case res == nil:
		v.State = StateNoData
	case res.Mismatch || len(res.Records) == 0 || res.Requested != dt:
		v.State = StateEmpty
	case res.Records[0].DocumentType() != dt:
		v.State = StateEmpty
	default:
		v.State = StatePopulated
		v.Items = make([]Item, 0, len(res.Records))
		for _, rec := range res.Records {
			v.Items = append(v.Items, d.item(rec))
		}
	}
	return v
}

func (d *Dispatcher) item(rec Record) Item {
	switch r := rec.(type) {
	case InquiryTitleRecord:
		return d.inquiryTitle(r)
	case InquiryContentRecord:
		return d.inquiryContent(r.InquiryHit, models.InquiryContent, anchor.Question, "Pertanyaan")
	case InquiryRespondRecord:
		return d.inquiryContent(r.InquiryHit, models.InquiryRespond, anchor.Answer, "Jawapan untuk pertanyaan")
	case HansardQuestionRecord:
		return d.hansardContent(r.HansardHit, models.HansardQuestion, anchor.Question)
	case HansardAnswerRecord:
		return d.hansardContent(r.HansardHit, models.HansardAnswer, anchor.Answer)
	case HansardSpeechRecord:
		return d.hansardContent(r.HansardHit, models.HansardSpeech, anchor.Speech)
	}
	panic(fmt.Sprintf("search: unhandled record %T", rec))
}

func oralLabel(oral bool) string {
	if oral {
		return "mulut"
	}
	return "bertulis"
}

func (d *Dispatcher) inquiryTitle(r InquiryTitleRecord) Item {
	prefix := "#" + strconv.FormatInt(r.Content.Number, 10) + " - "
	return Item{
		Template:     TemplateInquiryTitle,
		DocumentType: models.InquiryTitle,
		Link:         "/inquiry/" + strconv.FormatInt(r.Content.ID, 10),
		LinkHTML:     template.HTML(template.HTMLEscapeString(prefix)) + d.hl.HTML(r.Content.Highlight, r.Content.Title),
		Label:        prefix + d.hl.Text(r.Content.Highlight, r.Content.Title),
		Context:      "pertanyaan " + oralLabel(r.Content.IsOral),
		Person:       r.Inquirer.DisplayName(),
		Oral:         r.Content.IsOral,
	}
}

func (d *Dispatcher) inquiryContent(r InquiryHit, dt models.DocumentType, contentType, lead string) Item {
	path := "/inquiry/" + strconv.FormatInt(r.Inquiry.ID, 10)
	return Item{
		Template:     TemplateInquiry,
		DocumentType: dt,
		Body:         d.hl.HTML(r.Content.Highlight, r.Content.Value),
		Snippet:      d.hl.Text(r.Content.Highlight, r.Content.Value),
		Link:         anchor.Link(path, contentType, r.Content.ID, anchor.Inquiry),
		LinkHTML:     template.HTML(template.HTMLEscapeString(r.Inquiry.Title)),
		Label:        r.Inquiry.Title,
		Context:      lead + " " + oralLabel(r.Inquiry.IsOral) + " bertajuk",
		Person:       r.Person.DisplayName(),
		Oral:         r.Inquiry.IsOral,
	}
}

func (d *Dispatcher) hansardContent(r HansardHit, dt models.DocumentType, contentType string) Item {
	path := "/hansard/" + strconv.FormatInt(r.Hansard.ID, 10)
	label := "Hansard #" + strconv.FormatInt(r.Hansard.ID, 10)
	return Item{
		Template:     TemplateHansard,
		DocumentType: dt,
		Body:         d.hl.HTML(r.Content.Highlight, r.Content.Value),
		Snippet:      d.hl.Text(r.Content.Highlight, r.Content.Value),
		Link:         anchor.Link(path, contentType, r.Content.ID, anchor.Hansard),
		LinkHTML:     template.HTML(template.HTMLEscapeString(label)),
		Label:        label,
		Context:      "#" + contentType,
		Person:       r.Person.DisplayName(),
	}
}
