package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/service"
)

// AuthHandler exposes registration and sign-in over HTTP.
//
// The persisted session record drives authentication state; the JWT
// cookie issued on sign-in only binds the browser to that record.
type AuthHandler struct {
	auth   *service.AuthService
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, tokens *auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authSvc,
		tokens: tokens,
		logger: logger,
	}
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
// Registration does not sign the user in; the frontend routes to the
// sign-in page afterwards.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	summary, err := h.auth.Register(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("account registered",
		slog.String("userID", summary.ID),
		slog.String("email", summary.Email),
	)
	writeData(w, http.StatusCreated, summary)
}

// HandleSignIn verifies credentials, persists the session record, and
// sets the session cookie.
//
// HTTP: POST /api/auth/signin
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &input); err != nil {
		badRequest(w)
		return
	}

	session, err := h.auth.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenStr, err := h.tokens.Generate(session.UserID)
	if err != nil {
		h.logger.Error("sign-in: token generation failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	auth.SetSessionCookie(w, tokenStr)

	h.logger.Info("user signed in", slog.String("userID", session.UserID))
	writeData(w, http.StatusOK, session)
}

// HandleSignOut removes the persisted session and clears the cookie.
//
// HTTP: POST /api/auth/signout
// Signing out when nobody is signed in is not an error.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	auth.ClearSessionCookie(w)

	writeMessage(w, http.StatusOK, "Signed out")
}

// HandleMe returns the current session, or null data when anonymous.
//
// HTTP: GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, session)
}
