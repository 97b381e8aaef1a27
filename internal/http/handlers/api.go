package handlers

import "net/http"

func (a *App) State(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Store.Snapshot())
}

func (a *App) CatalogJSON(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Store.Catalog().Entries()})
}
