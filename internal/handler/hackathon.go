package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/hackhub/internal/analyze"
	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/service"
)

// HackathonHandler serves the hackathon catalog, registrations, and the
// optional AI analysis endpoint.
type HackathonHandler struct {
	hackathons *service.HackathonService
	analyzer   *analyze.Client
	logger     *slog.Logger
}

// NewHackathonHandler creates the handler. analyzer may be nil, in
// which case HandleAnalyze reports the feature as unavailable.
func NewHackathonHandler(hackathons *service.HackathonService, analyzer *analyze.Client, logger *slog.Logger) *HackathonHandler {
	return &HackathonHandler{
		hackathons: hackathons,
		analyzer:   analyzer,
		logger:     logger,
	}
}

// HandleList returns the hackathon catalog.
//
// HTTP: GET /api/hackathons
func (h *HackathonHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.hackathons.List())
}

// HandleGet returns one catalog entry.
//
// HTTP: GET /api/hackathons/{id}
func (h *HackathonHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.hackathons.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

// HandleRegister registers the signed-in user for a hackathon.
//
// HTTP: POST /api/hackathons/{id}/register
func (h *HackathonHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	entry, err := h.hackathons.Register(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

// HandleAnalyze proxies an analysis request to the external service.
//
// HTTP: POST /api/analyze-hackathon
// Body: {"hackathon_name": "..."}
func (h *HackathonHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		writeJSON(w, http.StatusServiceUnavailable, apiResponse{
			Success: false,
			Message: "Analysis service is not configured",
		})
		return
	}

	var input struct {
		HackathonName string `json:"hackathon_name"`
	}
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	data, err := h.analyzer.Analyze(r.Context(), input.HackathonName)
	if err != nil {
		h.logger.Warn("hackathon analysis failed",
			slog.String("hackathon", input.HackathonName),
			slog.String("error", err.Error()),
		)
		status := http.StatusBadGateway
		if !errors.Is(err, analyze.ErrUnavailable) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, apiResponse{Success: false, Message: err.Error()})
		return
	}

	writeData(w, http.StatusOK, data)
}
