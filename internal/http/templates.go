package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/filmclub/judgemental/internal/auth"
	"github.com/filmclub/judgemental/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"user_list",
	"user_detail",
	"movie_list",
	"movie_detail",
	"register",
	"login",
	"error",
}

// templates holds one parsed template per page, each sharing the base layout.
type templates struct {
	pages map[string]*template.Template
}

func parseTemplates() (*templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &templates{pages: pages}, nil
}

// pageData is the envelope every template receives: the layout consumes
// Title, CurrentUser, and Flash; the page content consumes Data.
type pageData struct {
	Title       string
	CurrentUser *domain.User
	Flash       string
	Data        interface{}
}

// render writes a full page. The pending flash message, if any, is consumed
// here so it shows exactly once.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data interface{}) {
	s.renderPage(w, r, status, page, title, s.popFlash(w, r), data)
}

// renderPage is render with an explicit flash message, for handlers that
// redisplay a form with a notice in the same response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page, title, flash string, data interface{}) {
	tmpl, ok := s.templates.pages[page]
	if !ok {
		s.logger.Printf("render: unknown page %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:       title,
		CurrentUser: auth.UserFromContext(r.Context()),
		Flash:       flash,
		Data:        data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", pd); err != nil {
		s.logger.Printf("render %s: %v", page, err)
	}
}

// renderError writes the generic error page for NotFound and friends.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	s.render(w, r, status, "error", http.StatusText(status), struct {
		Status  int
		Message string
	}{Status: status, Message: http.StatusText(status)})
}
