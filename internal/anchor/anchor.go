// Package anchor derives the stable identifiers used to deep-link, share and
// toggle individual content units of a transcript or inquiry.
package anchor

import (
	"net/url"
	"strconv"
	"strings"
)

// Namespace is the document family an anchor belongs to.
type Namespace string

const (
	Hansard Namespace = "hansard"
	Inquiry Namespace = "inquiry"
)

// Content type tokens used inside anchors.
const (
	Speech   = "ucapan"
	Question = "pertanyaan"
	Answer   = "jawapan"
)

// Generate returns "{namespace}-{contentType}-{id}". contentType is lower-cased.
// The namespace is always explicit; there is no implicit hansard default.
func Generate(contentType string, id int64, ns Namespace) string {
	var b strings.Builder
	b.Grow(len(ns) + len(contentType) + 22)
	b.WriteString(string(ns))
	b.WriteByte('-')
	b.WriteString(strings.ToLower(contentType))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(id, 10))
	return b.String()
}

// Parts is a decoded anchor.
type Parts struct {
	Namespace   Namespace
	ContentType string
	ID          int64
}

// Parse splits an anchor produced by Generate. It reports false for anything
// that Generate could not have produced.
func Parse(s string) (Parts, bool) {
	s = strings.TrimPrefix(s, "#")
	first := strings.IndexByte(s, '-')
	last := strings.LastIndexByte(s, '-')
	if first <= 0 || last <= first+1 || last == len(s)-1 {
		return Parts{}, false
	}
	ns := Namespace(s[:first])
	if ns != Hansard && ns != Inquiry {
		return Parts{}, false
	}
	contentType := s[first+1 : last]
	if contentType != strings.ToLower(contentType) {
		return Parts{}, false
	}
	id, err := strconv.ParseInt(s[last+1:], 10, 64)
	if err != nil || strconv.FormatInt(id, 10) != s[last+1:] {
		return Parts{}, false
	}
	return Parts{Namespace: ns, ContentType: contentType, ID: id}, true
}

// ShareURL returns pageURL with its fragment replaced by the anchor.
func ShareURL(pageURL *url.URL, a string) string {
	u := *pageURL
	u.Fragment = a
	u.RawFragment = ""
	return u.String()
}

// Link builds a site-relative link to a unit inside the document at path.
func Link(path string, contentType string, id int64, ns Namespace) string {
	return path + "#" + Generate(contentType, id, ns)
}
