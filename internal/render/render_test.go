package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/legisview/internal/page"
)

func renderDoc(t *testing.T, r *Renderer, name string, p Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, p))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestEmbeddedTemplates(t *testing.T) {
	r, err := New("", nil)
	require.NoError(t, err)

	doc := renderDoc(t, r, "home", Page{Title: "Home", Path: "/"})
	assert.Equal(t, "Home | legisview", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("#quick-search").Length())
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestRender_hidesQuickSearchAndScrolls(t *testing.T) {
	r, err := New("", nil)
	require.NoError(t, err)

	doc := renderDoc(t, r, "home", Page{HideQuickSearch: true, ScrollTo: "hansard-ucapan-1"})
	assert.Equal(t, 0, doc.Find("#quick-search").Length())
	assert.Contains(t, doc.Find("script").Text(), `"hansard-ucapan-1"`)
}

func TestRender_inquiryUnits(t *testing.T) {
	r, err := New("", nil)
	require.NoError(t, err)

	body := &page.Inquiry{
		Heading: "Pertanyaan Mulut #3",
		Title:   "Banjir",
		Groups: []page.Group{{
			Name: "Ali",
			Rows: []page.Row{{Units: []page.Unit{
				{Anchor: "inquiry-pertanyaan-12", ContentType: "pertanyaan", ShowName: true, Name: "Ali", Text: "Soalan", ShowText: true},
				{Anchor: "inquiry-pertanyaan-13", ContentType: "pertanyaan", Text: "x", ImageSrc: "data:image/jpeg;base64,AAAA", CanToggle: true},
			}}},
		}},
	}
	doc := renderDoc(t, r, "inquiry", Page{Path: "/inquiry/7", Body: body})

	first := doc.Find("#inquiry-pertanyaan-12")
	assert.Equal(t, "Ali", first.Find("h5.name").Text())
	assert.Equal(t, "Soalan", first.Find("p.text").Text())
	_, disabled := first.Find("button.toggle").Attr("disabled")
	assert.True(t, disabled)
	ret, _ := first.Find(`input[name="return"]`).Attr("value")
	assert.Equal(t, "/inquiry/7", ret)
	assert.Equal(t, "#pertanyaan", first.Find(".badge").Text())

	second := doc.Find("#inquiry-pertanyaan-13")
	src, _ := second.Find("img").Attr("src")
	assert.Equal(t, "data:image/jpeg;base64,AAAA", src)
	_, disabled = second.Find("button.toggle").Attr("disabled")
	assert.False(t, disabled)
	assert.Equal(t, 1, doc.Find(".avatar-placeholder").Length())
}

func TestRender_unknownPage(t *testing.T) {
	r, err := New("", nil)
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", Page{}))
}

func TestReload_fromDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	write("layout.html", `<p>{{template "content" .}}</p>`)
	write("partials.html", ``)
	write("home.html", `{{define "content"}}one{{end}}`)

	r, err := New(dir, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", Page{}))
	assert.Equal(t, "<p>one</p>", buf.String())

	write("home.html", `{{define "content"}}two{{end}}`)
	require.NoError(t, r.Reload())
	buf.Reset()
	require.NoError(t, r.Render(&buf, "home", Page{}))
	assert.Equal(t, "<p>two</p>", buf.String())

	write("home.html", `{{define "content"}}{{end`)
	assert.Error(t, r.Reload())
	buf.Reset()
	require.NoError(t, r.Render(&buf, "home", Page{}))
	assert.True(t, strings.Contains(buf.String(), "two"))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "x")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "x"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}
