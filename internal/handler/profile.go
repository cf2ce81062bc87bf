package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

// ProfileHandler serves the profile card and edit flow. The profile is
// readable by anonymous visitors, who get guest defaults.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// profilePayload bundles the profile with the display fields the
// frontend derives from it.
type profilePayload struct {
	Profile   model.Profile `json:"profile"`
	Initials  string        `json:"initials"`
	FirstName string        `json:"firstName"`
	Complete  bool          `json:"complete"`
}

// HandleGet returns the effective profile.
//
// HTTP: GET /api/profile
// Resolution order: saved profile, then session-derived defaults, then
// the guest profile.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	complete, err := h.profiles.IsComplete(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, profilePayload{
		Profile:   profile,
		Initials:  service.Initials(profile.Name),
		FirstName: service.FirstName(profile.Name),
		Complete:  complete,
	})
}

// HandleSave persists profile edits.
//
// HTTP: PUT /api/profile
// When a user is signed in this also syncs the copy embedded in their
// account record.
func (h *ProfileHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := decodeBody(r, &profile); err != nil {
		badRequest(w)
		return
	}

	if err := h.profiles.Save(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("profile saved", slog.String("email", profile.Email))
	writeMessage(w, http.StatusOK, "Profile updated")
}
