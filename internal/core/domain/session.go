package domain

import "time"

// Session is the persisted audit record created on every login or
// registration. It links a user to an opaque session identifier and is
// independent of the transport session cookie: one user may hold any number
// of concurrent records.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionData is the transport session payload held server-side and addressed
// by the session cookie. It is the primary authorization input: a request is
// authenticated iff a payload with a non-empty UserID resolves for its cookie.
// Role may be empty (authenticated but roleless); role gates must then fail.
type SessionData struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
