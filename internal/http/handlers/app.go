package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"nanomerch/internal/domain"
	"nanomerch/internal/infra"
	"nanomerch/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultMaxUploadBytes = 10 << 20

type App struct {
	Store          *session.Store
	Logger         *infra.Logger
	MaxUploadBytes int64

	views *template.Template
}

// NewApp parses the embedded views once. A nil logger discards output.
func NewApp(store *session.Store, logger *infra.Logger, maxUploadBytes int64) (*App, error) {
	if store == nil {
		return nil, errors.New("handlers: session store is required")
	}
	if logger == nil {
		discard := infra.DiscardLogger()
		logger = &discard
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	views, err := template.New("views").Funcs(viewFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("handlers: parse templates: %w", err)
	}
	return &App{Store: store, Logger: logger, MaxUploadBytes: maxUploadBytes, views: views}, nil
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	State   *session.State `json:"state,omitempty"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errCode, Message: message})
}

// wantsJSON separates API callers from browser form posts.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// respond finishes an intent. Browsers are sent back to the studio page where
// the state, including any error, is rendered. API callers get the snapshot,
// or an error body carrying it.
func (a *App) respond(w http.ResponseWriter, r *http.Request, st session.State, err error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err == nil {
		a.json(w, http.StatusOK, st)
		return
	}
	code, errCode := statusFor(err)
	a.json(w, code, errorBody{Error: errCode, Message: domain.UserMessage(err), State: &st})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrGenerationInProgress):
		return http.StatusConflict, "generation_in_progress"
	case errors.Is(err, domain.ErrNoSourceImage):
		return http.StatusConflict, "no_source_image"
	case errors.Is(err, domain.ErrUnknownProduct):
		return http.StatusNotFound, "unknown_product"
	case errors.Is(err, domain.ErrEmptyPrompt):
		return http.StatusBadRequest, "empty_prompt"
	case errors.Is(err, domain.ErrUnknownMode):
		return http.StatusBadRequest, "unknown_mode"
	case errors.Is(err, domain.ErrUnreadableFile):
		return http.StatusBadRequest, "unreadable_file"
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusServiceUnavailable, "missing_credential"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusBadGateway, "permission_denied"
	case errors.Is(err, domain.ErrNoImageReturned):
		return http.StatusBadGateway, "no_image_returned"
	default:
		return http.StatusBadGateway, "generation_failed"
	}
}
