package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// maxBodySize bounds webhook payloads at 1 MiB.
const maxBodySize = 1 << 20

// Handler exposes the relay over HTTP.
type Handler struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandler creates a new relay HTTP handler.
func NewHandler(service *Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Router builds the relay's route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/webhooks/appointments", h.HandleAppointment)

	return r
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAppointment verifies the signature and processes one delivery.
func (h *Handler) HandleAppointment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	if err := h.service.VerifySignature(body, r.Header.Get(SignatureHeader)); err != nil {
		h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("webhook signature rejected")
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	result, err := h.service.Process(r.Context(), body)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		h.logger.Error().Err(err).Msg("webhook processing failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
