package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationType is a user's relationship to an event they do not own.
type ParticipationType string

const (
	ParticipationJoined     ParticipationType = "joined"
	ParticipationInterested ParticipationType = "interested"
)

func (t ParticipationType) Valid() bool {
	return t == ParticipationJoined || t == ParticipationInterested
}

// EventParticipant links a user to a destination event. The (event, user)
// pair is unique; a repeated participate request overwrites the type.
type EventParticipant struct {
	EventID           uuid.UUID         `db:"event_id" json:"event_id"`
	UserID            uuid.UUID         `db:"user_id" json:"user_id"`
	ParticipationType ParticipationType `db:"participation_type" json:"participation_type"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// ParticipantWithUser is a participant row joined with the participant's
// public profile, used by the detail view.
type ParticipantWithUser struct {
	EventID           uuid.UUID         `db:"event_id" json:"event_id"`
	UserID            uuid.UUID         `db:"user_id" json:"user_id"`
	ParticipationType ParticipationType `db:"participation_type" json:"participation_type"`
	UserName          *string           `db:"user_name" json:"user_name,omitempty"`
	UserEmail         *string           `db:"user_email" json:"user_email,omitempty"`
	UserPictureURL    *string           `db:"user_picture_url" json:"user_picture_url,omitempty"`
}
