package models

import "time"

// Account is a registered user as persisted in the account collection. The
// password is kept verbatim next to the profile fields, matching the client's
// historical storage format, and is stripped from every API response.
type Account struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Avatar   *string   `json:"avatar"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the public projection of an Account. At most one session is
// persisted at a time; its absence means the client is anonymous.
type Session struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   *string   `json:"avatar"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session derives the session projection, dropping the password.
func (a *Account) Session() *Session {
	return &Session{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Avatar:   a.Avatar,
		JoinedAt: a.JoinedAt,
	}
}

// RegisterRequest defines the request body for registration. The password
// length rule lives in the account store so conflict checks run first.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Avatar   *string `json:"avatar,omitempty"`
}
