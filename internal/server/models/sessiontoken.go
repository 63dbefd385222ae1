package models

import "time"

// SessionToken is the stored token pair issued at login. At most one row per
// user exists at any time: a successful login supersedes the previous row.
// ExpiresAt is advisory for downstream validators; nothing in this service
// deletes rows on expiry.
type SessionToken struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}
