package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nanomerch/internal/domain"
	"nanomerch/internal/imagecodec"
)

// Upload reads the multipart "image" field into the session. A file that is
// not a readable image leaves the current image in place and sets the error.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("upload exceeds %d bytes: %w", a.MaxUploadBytes, domain.ErrUnreadableFile)
		} else {
			err = fmt.Errorf("read upload: %v: %w", err, domain.ErrUnreadableFile)
		}
		a.respond(w, r, a.Store.FailUpload(err), err)
		return
	}
	defer file.Close()

	src, err := imagecodec.Encode(file)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("upload rejected")
		a.respond(w, r, a.Store.FailUpload(err), err)
		return
	}
	a.respond(w, r, a.Store.Upload(src), nil)
}

func (a *App) Clear(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, a.Store.Clear(), nil)
}

// SetMode switches the active tab. Unknown values leave the mode unchanged.
func (a *App) SetMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := domain.ParseMode(r.FormValue("mode"))
	if !ok {
		a.respond(w, r, a.Store.Snapshot(), domain.ErrUnknownMode)
		return
	}
	a.respond(w, r, a.Store.SetMode(mode), nil)
}

func (a *App) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	_, err := a.Store.GenerateFromCatalog(r.Context(), chi.URLParam(r, "id"))
	a.respond(w, r, a.Store.Snapshot(), err)
}

func (a *App) GenerateText(w http.ResponseWriter, r *http.Request) {
	_, err := a.Store.GenerateFromText(r.Context(), r.FormValue("prompt"))
	a.respond(w, r, a.Store.Snapshot(), err)
}
