package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MailBurst/internal/db"
	"MailBurst/internal/dispatch"
	"MailBurst/internal/models"
)

// PassRunner is the slice of the dispatcher the trigger surface needs.
type PassRunner interface {
	RunPass(ctx context.Context, now time.Time) (models.DispatchResult, error)
	RunCampaign(ctx context.Context, id string, now time.Time) (models.DispatchResult, error)
}

type Handler struct {
	Dispatcher PassRunner
	Log        *zap.Logger
}

// Router assembles the trigger surface: one route for the external
// scheduler poll and one for the per-campaign "send now" action.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/dispatch/run", h.RunDispatchPass)
	r.Post("/campaigns/{id}/send", h.SendCampaign)
	return r
}

// RunDispatchPass triggers one full pass. Partial failures still produce
// a 200: the error list is data for the caller, not a failed request. A
// 500 means the pass could not begin at all.
func (h *Handler) RunDispatchPass(w http.ResponseWriter, r *http.Request) {
	result, err := h.Dispatcher.RunPass(r.Context(), time.Now())
	if err != nil {
		h.Log.Error("dispatch pass failed to start", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SendCampaign dispatches a single campaign immediately, regardless of
// its scheduled time.
func (h *Handler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	result, err := h.Dispatcher.RunCampaign(r.Context(), id, time.Now())
	if err != nil {
		var notFound *db.CampaignNotFoundError
		var statusErr *dispatch.StatusError
		switch {
		case errors.As(err, &notFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &statusErr):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.Log.Error("send now failed",
				zap.String("campaign_id", id),
				zap.Error(err),
			)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
