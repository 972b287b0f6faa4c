package entity

import (
	coreEntity "go-destinations-api/core/entity"

	"github.com/google/uuid"
)

// DestinationStatus is the lifecycle state of a destination event.
// "active" is the only non-terminal state: once past or cancelled an event
// never becomes active again.
type DestinationStatus string

const (
	DestinationStatusActive    DestinationStatus = "active"
	DestinationStatusPast      DestinationStatus = "past"
	DestinationStatusCancelled DestinationStatus = "cancelled"
)

// Terminal reports whether no further transition may leave this status.
func (s DestinationStatus) Terminal() bool {
	return s == DestinationStatusPast || s == DestinationStatusCancelled
}

// Destination is a scheduled, location-tagged event owned by a user.
// ScheduledTime is nil for all-day events.
type Destination struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	UserID        uuid.UUID         `db:"user_id" json:"user_id"`
	PlaceName     string            `db:"place_name" json:"place_name"`
	Slug          string            `db:"slug" json:"slug"`
	Latitude      float64           `db:"latitude" json:"latitude"`
	Longitude     float64           `db:"longitude" json:"longitude"`
	ScheduledDate string            `db:"scheduled_date" json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime *string           `db:"scheduled_time" json:"scheduled_time"` // HH:MM:SS
	Status        DestinationStatus `db:"status" json:"status"`
	coreEntity.BaseEntity
}

// PaginatedDestinationEntity is one page of a destination listing.
type PaginatedDestinationEntity struct {
	Items      []Destination `json:"items"`
	TotalItems int           `json:"total_items"`
	PageNumber int           `json:"page_number"`
	PageSize   int           `json:"page_size"`
}
