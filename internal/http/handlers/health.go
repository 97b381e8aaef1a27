package handlers

import (
	"net/http"
)

// Health reports liveness plus a glance at the session.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	st := a.Store.Snapshot()
	a.json(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generating": st.InProgress,
		"history":    len(st.History),
	})
}
