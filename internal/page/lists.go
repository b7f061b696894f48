package page

import (
	"strconv"

	"github.com/hyperjump/legisview/internal/models"
)

// Link is one entry of a list page.
type Link struct {
	Label string
	Href  string
}

// HansardList is the view model of /hansard.
type HansardList struct {
	Items []Link
}

// NewHansardList lists transcripts in the order the archive returns them.
func NewHansardList(items []models.HansardSummary) *HansardList {
	l := &HansardList{Items: make([]Link, 0, len(items))}
	for _, h := range items {
		id := strconv.FormatInt(h.ID, 10)
		l.Items = append(l.Items, Link{Label: "Hansard #" + id, Href: "/hansard/" + id})
	}
	return l
}

// InquiryList is the view model of /inquiry, split by kind.
type InquiryList struct {
	Oral    []Link
	Written []Link
}

// NewInquiryList splits inquiries into oral and written columns.
func NewInquiryList(items []models.Inquiry) *InquiryList {
	l := &InquiryList{}
	for _, inq := range items {
		link := Link{
			Label: "#" + strconv.FormatInt(inq.Number, 10) + " - " + inq.DisplayTitle(),
			Href:  "/inquiry/" + strconv.FormatInt(inq.ID, 10),
		}
		if inq.IsOral {
			l.Oral = append(l.Oral, link)
		} else {
			l.Written = append(l.Written, link)
		}
	}
	return l
}
