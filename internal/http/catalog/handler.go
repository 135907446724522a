package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
)

type Handler struct {
	catalog *catalog.Catalog
}

func NewHandler(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type fieldResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Placeholder string `json:"placeholder,omitempty"`
}

type tramiteResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PriceCOP    int64           `json:"price_cop"`
	Benefit     string          `json:"benefit"`
	Fields      []fieldResponse `json:"fields"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.List()

	out := make([]tramiteResponse, len(items))
	for i, t := range items {
		out[i] = toResponse(t)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrTramiteNotFound) {
			http.Error(w, "tramite not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(t))
}

func toResponse(t catalog.Tramite) tramiteResponse {
	fields := make([]fieldResponse, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = fieldResponse{
			ID:          f.ID,
			Label:       f.Label,
			Kind:        string(f.Kind),
			Placeholder: f.Placeholder,
		}
	}

	return tramiteResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		PriceCOP:    t.PriceCOP,
		Benefit:     t.Benefit,
		Fields:      fields,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
