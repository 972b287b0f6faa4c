package entity

import (
	coreEntity "go-destinations-api/core/entity"

	"github.com/google/uuid"
)

// User is an account created through Google sign-in. Name and picture come
// from the Google profile and may be absent.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	GoogleID   string    `db:"google_id" json:"-"`
	Email      string    `db:"email" json:"email"`
	Name       *string   `db:"name" json:"name,omitempty"`
	PictureURL *string   `db:"picture_url" json:"picture_url,omitempty"`
	coreEntity.BaseEntity
}

// DisplayName resolves the name shown next to events this user organizes:
// the profile name when present, the email otherwise.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
