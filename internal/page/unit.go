// Package page builds the view models rendered by the viewer's templates from
// loader data and the session's view state. Controllers never fetch.
package page

import (
	"html/template"
	"net/url"

	"github.com/hyperjump/legisview/internal/anchor"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/viewstate"
)

// Unit is one content unit as rendered.
type Unit struct {
	Anchor      string
	ContentType string
	// ShowName is set on the first unit of a group.
	ShowName bool
	Name     string
	Text     string
	ImageSrc template.URL
	ShowText bool
	// CanToggle is false when the unit has no scanned image.
	CanToggle bool
	ShareURL  string
}

// Avatar is the portrait shown next to the first row of a group.
type Avatar struct {
	ImageURL string
}

// Row is a run of units laid out together.
type Row struct {
	Units []Unit
}

// Group is the contiguous content of one person.
type Group struct {
	Name   string
	Avatar Avatar
	Rows   []Row
}

// anchorSet is the Locator of a rendered page.
type anchorSet map[string]struct{}

func (s anchorSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

type builder struct {
	ns      anchor.Namespace
	modes   *viewstate.DisplayModes
	pageURL *url.URL
	anchors anchorSet
}

func newBuilder(ns anchor.Namespace, state *viewstate.State, pageURL *url.URL) *builder {
	return &builder{
		ns:      ns,
		modes:   state.DisplayModes,
		pageURL: pageURL,
		anchors: anchorSet{},
	}
}

func (b *builder) unit(contentType string, c models.ContentElement, name string, showName bool) Unit {
	a := anchor.Generate(contentType, c.ID, b.ns)
	b.anchors[a] = struct{}{}

	u := Unit{
		Anchor:      a,
		ContentType: contentType,
		ShowName:    showName,
		Name:        name,
		Text:        c.Value,
		ShowText:    b.modes.ShowText(a),
		CanToggle:   c.HasImage(),
		ShareURL:    anchor.ShareURL(b.pageURL, a),
	}
	if u.Text == "" {
		u.Text = models.Placeholder
	}
	if u.CanToggle {
		u.ImageSrc = template.URL("data:image/jpeg;base64," + *c.Image)
	} else {
		// A unit without an image is always shown as text.
		u.ShowText = true
	}
	return u
}

func avatarOf(p *models.Person) Avatar {
	if p == nil {
		return Avatar{}
	}
	return Avatar{ImageURL: p.ImageURL}
}

// scrollTarget consumes the session's pending fragment and returns the element
// id to smooth-scroll to, or "".
func scrollTarget(state *viewstate.State, loc viewstate.Locator) string {
	target, ok := state.Scroller.Resolve(state.TakePendingFragment(), loc)
	if !ok {
		return ""
	}
	return target
}
