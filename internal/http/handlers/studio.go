package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"nanomerch/internal/domain"
	"nanomerch/internal/prompt"
	"nanomerch/internal/session"
)

var viewFuncs = template.FuncMap{
	// imageURL marks a stored data-URI as safe for an img src. Only values the
	// codec produced reach the views.
	"imageURL": func(src domain.SourceImage) template.URL {
		if !strings.HasPrefix(string(src), "data:image/") {
			return ""
		}
		return template.URL(src)
	},
	"modeLabel": modeLabel,
	"stamp": func(t time.Time) string {
		return t.Local().Format("Jan 2, 15:04:05")
	},
}

func modeLabel(m domain.Mode) string {
	switch m {
	case domain.ModeCatalog:
		return "Merch Mockup"
	case domain.ModeFreeText:
		return "Magic Edit"
	default:
		return string(m)
	}
}

type studioView struct {
	State       session.State
	Catalog     []domain.CatalogEntry
	Suggestions []string
	CatalogMode bool
}

// Index renders the studio page from the current snapshot.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	st := a.Store.Snapshot()
	view := studioView{
		State:       st,
		Catalog:     a.Store.Catalog().Entries(),
		Suggestions: prompt.Suggestions(),
		CatalogMode: st.Mode != domain.ModeFreeText,
	}

	var buf bytes.Buffer
	if err := a.views.ExecuteTemplate(&buf, "studio.html", view); err != nil {
		a.Logger.Error().Err(err).Msg("render studio")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
