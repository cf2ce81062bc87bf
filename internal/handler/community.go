package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

// CommunityHandler serves community CRUD, the chat board, and deadline
// tracking.
type CommunityHandler struct {
	communities *service.CommunityService
	logger      *slog.Logger
	now         func() time.Time
}

func NewCommunityHandler(communities *service.CommunityService, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{
		communities: communities,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleList returns every community.
//
// HTTP: GET /api/communities
func (h *CommunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	communities, err := h.communities.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, communities)
}

// HandleCreate creates a community.
//
// HTTP: POST /api/communities
func (h *CommunityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCommunityInput
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	community, err := h.communities.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("community created",
		slog.String("communityID", community.ID),
		slog.String("name", community.CommunityName),
	)
	writeData(w, http.StatusCreated, community)
}

// HandleGet returns one community by id.
//
// HTTP: GET /api/communities/{id}
func (h *CommunityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	community, err := h.communities.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, community)
}

// HandleJoin adds the signed-in user to a community. The community
// snapshot is copied into their aggregate record at join time.
//
// HTTP: POST /api/communities/{id}/join
func (h *CommunityHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if err := h.communities.Join(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Joined community")
}

// HandleLeave removes the signed-in user from a community.
//
// HTTP: POST /api/communities/{id}/leave
func (h *CommunityHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if err := h.communities.Leave(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Left community")
}

// HandlePostMessage appends a chat message to the community board.
//
// HTTP: POST /api/communities/{id}/messages
func (h *CommunityHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text   string `json:"text"`
		Sender string `json:"sender"`
	}
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	session := auth.SessionFromContext(r.Context())
	message, err := h.communities.PostMessage(r.Context(), session, chi.URLParam(r, "id"), input.Text, input.Sender)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, message)
}

// HandleAddDeadline adds a deadline to the community tracker.
//
// HTTP: POST /api/communities/{id}/deadlines
func (h *CommunityHandler) HandleAddDeadline(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title    string `json:"title"`
		Date     string `json:"date"`
		Priority string `json:"priority"`
	}
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	session := auth.SessionFromContext(r.Context())
	deadline, err := h.communities.AddDeadline(r.Context(), session, chi.URLParam(r, "id"), input.Title, input.Date, input.Priority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, deadline)
}

// statusDeadline is a tagged deadline annotated with its urgency bucket
// relative to today.
type statusDeadline struct {
	model.TaggedDeadline
	Status   string `json:"status"`
	DaysLeft int    `json:"daysLeft"`
}

// HandleAllDeadlines returns every deadline across all communities,
// sorted by date and classified as overdue, today, this-week, or later.
//
// HTTP: GET /api/deadlines
func (h *CommunityHandler) HandleAllDeadlines(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.communities.AllDeadlines(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	now := h.now()
	out := make([]statusDeadline, 0, len(deadlines))
	for _, d := range deadlines {
		status, err := service.ClassifyDeadline(d.Date, now)
		if err != nil {
			// Malformed dates are skipped rather than failing the whole list.
			h.logger.Warn("skipping deadline with bad date",
				slog.String("deadlineID", d.ID),
				slog.String("date", d.Date),
			)
			continue
		}
		days, _ := service.DaysUntil(d.Date, now)
		out = append(out, statusDeadline{
			TaggedDeadline: d,
			Status:         string(status),
			DaysLeft:       days,
		})
	}

	writeData(w, http.StatusOK, out)
}
