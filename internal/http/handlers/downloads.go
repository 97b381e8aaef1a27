package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"nanomerch/internal/imagecodec"
	"nanomerch/pkg/zip"
)

const archiveName = "nanomerch-gallery.zip"

// Download is the save action: the record's result image as a PNG attachment.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.Store.Record(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "generation not found")
		return
	}
	data, _, err := imagecodec.DecodeBytes(rec.ResultImage)
	if err != nil {
		a.Logger.Error().Err(err).Str("record_id", rec.ID).Msg("decode stored result")
		a.error(w, http.StatusInternalServerError, "internal", "stored image is corrupt")
		return
	}
	w.Header().Set("Content-Type", imagecodec.PNG)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", rec.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DownloadAll archives every result in the gallery, most recent first.
func (a *App) DownloadAll(w http.ResponseWriter, r *http.Request) {
	history := a.Store.Snapshot().History
	if len(history) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "gallery is empty")
		return
	}
	entries := make([]zip.Entry, 0, len(history))
	for _, rec := range history {
		data, _, err := imagecodec.DecodeBytes(rec.ResultImage)
		if err != nil {
			a.Logger.Warn().Err(err).Str("record_id", rec.ID).Msg("skip corrupt result in archive")
			continue
		}
		entries = append(entries, zip.Entry{Filename: rec.Filename(), Modified: rec.CreatedAt, Data: data})
	}
	archive, err := zip.Archive(entries)
	if err != nil {
		a.Logger.Error().Err(err).Msg("build gallery archive")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", archiveName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
