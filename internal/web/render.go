package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
)

var pageNames = []string{
	"index",
	"employee",
	"add_employee",
	"edit_employee",
	"del_employee",
	"monthly_shift",
	"daily_shift",
	"add_daily_shift",
	"error",
}

// pageData is handed to every template. Title is a translation key.
type pageData struct {
	Lang  string
	Title string
	Data  any
}

func parsePages(funcs template.FuncMap) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": s.localizer.Get,
		"tf": func(lang, key string, pairs ...any) (string, error) {
			if len(pairs)%2 != 0 {
				return "", errors.New("tf expects key/value pairs")
			}
			data := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				name, ok := pairs[i].(string)
				if !ok {
					return "", fmt.Errorf("tf placeholder name %v is not a string", pairs[i])
				}
				data[name] = pairs[i+1]
			}
			return s.localizer.GetWithData(lang, key, data), nil
		},
		"dayToken": calendar.DayToken,
		"weekday": func(lang string, day time.Time) string {
			return s.localizer.Get(lang, "weekday."+strconv.Itoa(int(day.Weekday())))
		},
	}
}

// render executes a page into a buffer first so a template error still
// produces a clean 500 response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		s.log.ErrorContext(r.Context(), "Unknown page", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", pageData{
		Lang:  s.lang(r),
		Title: title,
		Data:  data,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	s.render(w, r, status, "error", "page.error", errorPage{Status: status, Message: messageKey})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "error.not_found")
}
