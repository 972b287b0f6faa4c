package entity

import (
	"time"

	"github.com/google/uuid"
)

// OAuthState is a one-time CSRF nonce for the Google OAuth flow.
type OAuthState struct {
	ID        uuid.UUID `db:"id" json:"id"`
	State     string    `db:"state" json:"state"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
