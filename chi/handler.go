package chi

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/fwojciec/pagelens"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// modeOption is one entry of the mode selector.
type modeOption struct {
	Value    pagelens.Mode
	Label    string
	Selected bool
}

// section is the rendered outcome of one review.
type section struct {
	Title  string
	Blocks []template.HTML
	Error  string
}

// indexPage is the data rendered by index.html.
type indexPage struct {
	URL      string
	Modes    []modeOption
	Error    string
	Sections []section
}

func newIndexPage(url string, mode pagelens.Mode) *indexPage {
	p := &indexPage{URL: url}
	for _, m := range []pagelens.Mode{pagelens.ModeUI, pagelens.ModeUX, pagelens.ModeBoth} {
		p.Modes = append(p.Modes, modeOption{Value: m, Label: m.Title(), Selected: m == mode})
	}
	return p
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, newIndexPage("", pagelens.ModeUI))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		page := newIndexPage("", pagelens.ModeUI)
		page.Error = "Invalid form submission."
		s.render(w, r, http.StatusBadRequest, page)
		return
	}

	url := strings.TrimSpace(r.PostFormValue("url"))
	mode := pagelens.ModeUI
	if v := r.PostFormValue("mode"); v != "" {
		m, err := pagelens.ParseMode(v)
		if err != nil {
			page := newIndexPage(url, pagelens.ModeUI)
			page.Error = pagelens.UserMessage(err)
			s.render(w, r, http.StatusBadRequest, page)
			return
		}
		mode = m
	}

	page := newIndexPage(url, mode)
	if url == "" {
		page.Error = "URL is required"
		s.render(w, r, http.StatusBadRequest, page)
		return
	}

	res, err := s.Analyzer.Analyze(r.Context(), &pagelens.Request{URL: url, Mode: mode})
	if err != nil {
		s.Logger.Error("analyze", "url", url, "mode", string(mode), "err", err)
		page.Error = pagelens.UserMessage(err)
		s.render(w, r, statusFor(err), page)
		return
	}

	for _, a := range res.Analyses() {
		sec := section{Title: a.Mode.Title()}
		if a.Err != nil {
			sec.Error = pagelens.UserMessage(a.Err)
		}
		for _, b := range a.Blocks {
			// Block HTML is escaped or produced by the Markdown renderer
			// with raw HTML disabled.
			sec.Blocks = append(sec.Blocks, template.HTML(b.HTMLString()))
		}
		page.Sections = append(page.Sections, sec)
	}
	s.render(w, r, http.StatusOK, page)
}

// render executes the index template into a buffer so that a template
// failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page *indexPage) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, page); err != nil {
		s.Logger.Error("render template", "path", r.URL.Path, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// statusFor maps an application error code to an HTTP status.
func statusFor(err error) int {
	switch pagelens.ErrorCode(err) {
	case pagelens.EINVALID:
		return http.StatusBadRequest
	case pagelens.EFETCH:
		return http.StatusBadGateway
	case pagelens.ENOCONTENT:
		return http.StatusUnprocessableEntity
	case pagelens.ELLM, pagelens.ECONFIG:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
