package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{reference}", h.get)
	r.Post("/{reference}/cancel", h.cancel)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := transaction.Status(s)
		filter.Status = &status
	}

	recs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponses(recs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	rec, err := h.svc.Get(r.Context(), reference)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec))
}

type cancelRequest struct {
	Reason transaction.CancelReason `json:"reason"`
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Reason == "" {
		req.Reason = transaction.ReasonCancelledByUser
	}

	if err := h.svc.Cancel(r.Context(), reference, req.Reason); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
