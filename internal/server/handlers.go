package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/anchor"
	"github.com/hyperjump/legisview/internal/loader"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/page"
	"github.com/hyperjump/legisview/internal/render"
	"github.com/hyperjump/legisview/internal/session"
	"github.com/hyperjump/legisview/internal/upstream"
	"github.com/hyperjump/legisview/internal/viewstate"
)

const paramReturn = "return"

type errorBody struct {
	Status  string
	Message string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).TakePendingFragment()
	s.respondPage(w, r, http.StatusOK, "home", "ok", render.Page{Path: r.URL.Path})
}

func (s *Server) handleHansardList(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).TakePendingFragment()
	items, err := s.loader.HansardList(r.Context())
	if err != nil {
		s.respondLoadError(w, r, "hansard_list", err)
		return
	}
	s.respondPage(w, r, http.StatusOK, "hansard_list", "ok", render.Page{
		Title: "Hansard",
		Path:  r.URL.Path,
		Body:  page.NewHansardList(items),
	})
}

func (s *Server) handleHansard(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		state.TakePendingFragment()
		s.respondNotFound(w, r, "hansard")
		return
	}
	h, err := s.loader.Hansard(r.Context(), id)
	if err != nil {
		state.TakePendingFragment()
		s.respondLoadError(w, r, "hansard", err)
		return
	}
	v := page.NewTranscript(h, state, s.pageURL(r))
	s.respondPage(w, r, http.StatusOK, "hansard", "ok", render.Page{
		Title:    v.Title,
		Path:     r.URL.Path,
		ScrollTo: v.ScrollTo,
		Body:     v,
	})
}

func (s *Server) handleInquiryList(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).TakePendingFragment()
	items, err := s.loader.InquiryList(r.Context())
	if err != nil {
		s.respondLoadError(w, r, "inquiry_list", err)
		return
	}
	s.respondPage(w, r, http.StatusOK, "inquiry_list", "ok", render.Page{
		Title: "Pertanyaan",
		Path:  r.URL.Path,
		Body:  page.NewInquiryList(items),
	})
}

func (s *Server) handleInquiry(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		state.TakePendingFragment()
		s.respondNotFound(w, r, "inquiry")
		return
	}
	inq, err := s.loader.Inquiry(r.Context(), id)
	if err != nil {
		state.TakePendingFragment()
		s.respondLoadError(w, r, "inquiry", err)
		return
	}
	v := page.NewInquiry(inq, state, s.pageURL(r))
	s.respondPage(w, r, http.StatusOK, "inquiry", "ok", render.Page{
		Title:    v.Heading,
		Path:     r.URL.Path,
		ScrollTo: v.ScrollTo,
		Body:     v,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())
	state.TakePendingFragment()
	data, err := s.loader.Search(r.Context(), state, r.URL.Query())
	if errors.Is(err, loader.ErrSuperseded) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.respondLoadError(w, r, "search", err)
		return
	}
	v := page.NewSearch(data, s.dispatcher)
	s.respondPage(w, r, http.StatusOK, "search", v.Result.State.String(), render.Page{
		Title:           "Search",
		Path:            r.URL.Path,
		HideQuickSearch: true,
		Body:            v,
	})
}

// handleSearchSubmit handles the search page form. The facet currently shown
// is carried along; the default applies when there is none.
func (s *Server) handleSearchSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	s.submit(w, r, "search", viewstate.Query{
		Text:         r.PostForm.Get(viewstate.ParamQueryText),
		DocumentType: orDefault(r.PostForm.Get(viewstate.ParamDocumentType)),
	})
}

// handleQuickSearch handles the navbar form. Empty text goes back to where the
// user was without touching the stored query.
func (s *Server) handleQuickSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	text := strings.TrimSpace(r.PostForm.Get(viewstate.ParamQueryText))
	if text == "" {
		http.Redirect(w, r, safeReturn(r.PostForm.Get(paramReturn)), http.StatusSeeOther)
		return
	}
	s.submit(w, r, "quick", viewstate.Query{Text: text, DocumentType: string(models.DefaultDocumentType)})
}

// handleFacet handles a tab click: same text, new facet.
func (s *Server) handleFacet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	s.submit(w, r, "facet", viewstate.Query{
		Text:         r.PostForm.Get(viewstate.ParamQueryText),
		DocumentType: orDefault(r.PostForm.Get(viewstate.ParamDocumentType)),
	})
}

// submit stores q and then redirects to its canonical search URL.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, producer string, q viewstate.Query) {
	session.FromContext(r.Context()).Query.Submit(q)
	s.metrics.QuerySubmitted(producer)
	s.logger.Debug("query submitted",
		zap.String("producer", producer),
		zap.String("query", q.Text),
		zap.String("document_type", q.DocumentType),
	)
	http.Redirect(w, r, q.SearchPath(), http.StatusSeeOther)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	a := r.PostForm.Get("anchor")
	if _, ok := anchor.Parse(a); !ok {
		s.respondError(w, http.StatusBadRequest, "invalid anchor")
		return
	}
	state := session.FromContext(r.Context())
	showText := state.DisplayModes.Toggle(a)
	state.RestoreTo(a)
	s.metrics.DisplayToggled()
	s.logger.Debug("display mode toggled", zap.String("anchor", a), zap.Bool("show_text", showText))
	http.Redirect(w, r, withFragment(safeReturn(r.PostForm.Get(paramReturn)), a), http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondNotFound(w, r, "not_found")
}

func (s *Server) respondNotFound(w http.ResponseWriter, r *http.Request, name string) {
	s.respondPage(w, r, http.StatusNotFound, "error", "not_found", render.Page{
		Title: "Not found",
		Path:  r.URL.Path,
		Body:  errorBody{Status: "404", Message: "TIDAK TERJUMPA"},
	})
	s.logger.Debug("page not found", zap.String("page", name), zap.String("path", r.URL.Path))
}

// respondLoadError maps a loader failure to a scoped error page: 404 when the
// archive has no such record, 502 for anything else.
func (s *Server) respondLoadError(w http.ResponseWriter, r *http.Request, name string, err error) {
	if errors.Is(err, upstream.ErrNotFound) {
		s.respondPage(w, r, http.StatusNotFound, "error", "not_found", render.Page{
			Title: "Not found",
			Path:  r.URL.Path,
			Body:  errorBody{Status: "404", Message: "TIDAK TERJUMPA"},
		})
		return
	}
	s.logger.Error("load failed", zap.String("page", name), zap.String("path", r.URL.Path), zap.Error(err))
	s.metrics.PageRendered(name, "error")
	s.respondPage(w, r, http.StatusBadGateway, "error", "error", render.Page{
		Title: "Error",
		Path:  r.URL.Path,
		Body:  errorBody{Status: "502", Message: "The archive could not be reached. Please try again."},
	})
}

func (s *Server) respondPage(w http.ResponseWriter, r *http.Request, status int, name, state string, p render.Page) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, p); err != nil {
		s.logger.Error("render failed", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if name != "error" {
		s.metrics.PageRendered(name, state)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func orDefault(documentType string) string {
	if documentType == "" {
		return string(models.DefaultDocumentType)
	}
	return documentType
}

// withFragment replaces any fragment of target with fragment.
func withFragment(target, fragment string) string {
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	return target + "#" + fragment
}

// safeReturn accepts only site-local absolute paths as redirect targets.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
