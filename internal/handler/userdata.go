package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/service"
)

// UserDataHandler serves the per-user aggregate record: joined
// communities, projects, hackathon registrations, and contributions.
type UserDataHandler struct {
	userData *service.UserDataService
	logger   *slog.Logger
}

func NewUserDataHandler(userData *service.UserDataService, logger *slog.Logger) *UserDataHandler {
	return &UserDataHandler{userData: userData, logger: logger}
}

// HandleGet returns the whole aggregate record. Guests get the empty
// record.
//
// HTTP: GET /api/userdata
func (h *UserDataHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if session := auth.SessionFromContext(r.Context()); session != nil {
		userID = session.UserID
	}

	data, err := h.userData.UserData(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, data)
}

// HandleAddProject records a completed project.
//
// HTTP: POST /api/userdata/projects
func (h *UserDataHandler) HandleAddProject(w http.ResponseWriter, r *http.Request) {
	var input service.ProjectInput
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	session := auth.SessionFromContext(r.Context())
	project, err := h.userData.AddProject(r.Context(), session.UserID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, project)
}

// HandleProfileView bumps the profile-view counter.
//
// HTTP: POST /api/userdata/profile-view
func (h *UserDataHandler) HandleProfileView(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if err := h.userData.IncrementProfileViews(r.Context(), session.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Recorded")
}

// HandleClear wipes the signed-in user's aggregate record.
//
// HTTP: DELETE /api/userdata
func (h *UserDataHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if err := h.userData.ClearUserData(r.Context(), session.UserID); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("user data cleared", slog.String("userID", session.UserID))
	writeMessage(w, http.StatusOK, "User data cleared")
}
