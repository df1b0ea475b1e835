package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/projectflow-dev/projectflow/internal/formstore"
	"github.com/projectflow-dev/projectflow/internal/logger"
	"github.com/projectflow-dev/projectflow/pkg/renderer"
)

// PreviewHandler renders a form's schema as a standalone HTML page. It is
// mounted directly on the router because its output is HTML, not JSON.
type PreviewHandler struct {
	Store    *formstore.Store
	Renderer *renderer.Renderer
}

func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, formstore.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := h.Renderer.RenderPage(r.Context(), f.Schema())
	if err != nil {
		logger.L.Error("render preview", "form", id, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
