package dto

import (
	"time"

	"go-destinations-api/modules/destination/entity"
)

// ===================== Request DTOs =====================

// CreateDestinationRequest for pinning a new destination event.
// ScheduledTime empty means an all-day event.
type CreateDestinationRequest struct {
	PlaceName     string  `json:"place_name" validate:"required"`
	Latitude      float64 `json:"latitude" validate:"required"`
	Longitude     float64 `json:"longitude" validate:"required"`
	ScheduledDate string  `json:"scheduled_date" validate:"required"` // YYYY-MM-DD
	ScheduledTime string  `json:"scheduled_time"`                    // HH:MM:SS, optional
}

// ParticipateRequest selects the participation type.
type ParticipateRequest struct {
	Type string `json:"type" validate:"required,oneof=joined interested"`
}

// ===================== Response DTOs =====================

// DestinationView is one entry of a user's combined event list: the event
// itself plus how this user relates to it.
type DestinationView struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	PlaceName     string     `json:"place_name"`
	Slug          string     `json:"slug,omitempty"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	ScheduledDate string     `json:"scheduled_date"`
	ScheduledTime *string    `json:"scheduled_time"`
	Status        string     `json:"status"`
	IsOrganizer   bool       `json:"is_organizer"`
	// ParticipationType is only set when the user is not the organizer. A
	// nil value on a participated event is tolerated (missing participation
	// record) rather than treated as an error.
	ParticipationType *string   `json:"participation_type,omitempty"`
	OrganizerName     string    `json:"organizer_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// OrganizerInfo is the owner's public profile on a detail view.
type OrganizerInfo struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	PictureURL *string `json:"picture_url,omitempty"`
}

// ParticipantInfo is one participant with their public profile.
type ParticipantInfo struct {
	UserID            string  `json:"user_id"`
	ParticipationType string  `json:"participation_type"`
	Name              *string `json:"name,omitempty"`
	PictureURL        *string `json:"picture_url,omitempty"`
}

// DestinationDetailResponse is the full single-event view.
type DestinationDetailResponse struct {
	entity.Destination
	Organizer       *OrganizerInfo    `json:"organizer,omitempty"`
	Participants    []ParticipantInfo `json:"participants"`
	Joined          []ParticipantInfo `json:"joined"`
	Interested      []ParticipantInfo `json:"interested"`
	JoinedCount     int               `json:"joined_count"`
	InterestedCount int               `json:"interested_count"`
}

// PaginatedDestinationResponse for the public browse listing.
type PaginatedDestinationResponse struct {
	Items      []entity.Destination `json:"items"`
	TotalItems int                  `json:"total_items"`
	PageNumber int                  `json:"page_number"`
	PageSize   int                  `json:"page_size"`
}

// ParticipantResponse echoes an upserted participation record.
type ParticipantResponse struct {
	EventID           string `json:"event_id"`
	UserID            string `json:"user_id"`
	ParticipationType string `json:"participation_type"`
}

// ===================== Mapper Functions =====================

// ToDestinationView maps an event into the caller's personalized view.
func ToDestinationView(d *entity.Destination, isOrganizer bool, participationType *entity.ParticipationType, organizerName string) DestinationView {
	view := DestinationView{
		ID:            d.ID.String(),
		UserID:        d.UserID.String(),
		PlaceName:     d.PlaceName,
		Slug:          d.Slug,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: d.ScheduledTime,
		Status:        string(d.Status),
		IsOrganizer:   isOrganizer,
		OrganizerName: organizerName,
		CreatedAt:     d.CreatedAt,
	}
	if !isOrganizer && participationType != nil {
		s := string(*participationType)
		view.ParticipationType = &s
	}
	return view
}

func ToParticipantInfo(p *entity.ParticipantWithUser) ParticipantInfo {
	return ParticipantInfo{
		UserID:            p.UserID.String(),
		ParticipationType: string(p.ParticipationType),
		Name:              p.UserName,
		PictureURL:        p.UserPictureURL,
	}
}
