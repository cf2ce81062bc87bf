// Package model defines the data structures used throughout the application.
package model

import "time"

// Account represents a registered user account.
//
// The password is stored exactly as the user typed it. That is a known
// weakness of the platform this service is compatible with: sign-in is an
// exact string compare against this field, and no hashing happens anywhere.
// Everything that leaves the service goes through Sanitize first so the
// password never appears in an API response.
//
// ProfileData is the embedded copy of the user's profile. A second,
// standalone copy lives under the "profileData" store key (see the store
// package); every profile write must update both, and sign-in refreshes the
// standalone copy from this one.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	RegisteredAt time.Time `json:"registeredAt"`
	ProfileData  Profile   `json:"profileData"`
}

// AccountSummary is the password-stripped view of an account returned by
// registration and sign-in.
type AccountSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Sanitize returns the account's public summary.
func (a *Account) Sanitize() AccountSummary {
	return AccountSummary{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}

// Session is the currently authenticated user's identity pointer.
// Exactly one session exists at a time; it is created on sign-in, deleted on
// sign-out, and has no expiry of its own (the cookie token layered on top of
// it does expire, but the persisted session is the source of truth).
type Session struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	SignedInAt time.Time `json:"signedInAt"`
}
