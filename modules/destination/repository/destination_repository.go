package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go-destinations-api/core/database"
	"go-destinations-api/core/logger"
	"go-destinations-api/core/params"
	"go-destinations-api/modules/destination/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// destinationColumns keeps scheduled_date/scheduled_time on the wire as
// plain strings (YYYY-MM-DD, HH:MM:SS) regardless of the column types.
const destinationColumns = `
	id, user_id, place_name, slug, latitude, longitude,
	to_char(scheduled_date, 'YYYY-MM-DD') AS scheduled_date,
	to_char(scheduled_time, 'HH24:MI:SS') AS scheduled_time,
	status, created_at, updated_at
`

// DestinationRepository handles destination and participation persistence.
type DestinationRepository struct {
	DB database.Database
}

func NewDestinationRepository(db database.Database) *DestinationRepository {
	return &DestinationRepository{DB: db}
}

// DestinationRepositoryInterface defines the repository contract
type DestinationRepositoryInterface interface {
	Create(ctx context.Context, d *entity.Destination) (*entity.Destination, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Destination, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Destination, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Destination, error)
	GetActive(ctx context.Context) ([]entity.Destination, error)
	GetActivePage(ctx context.Context, p params.QueryParams) (*entity.PaginatedDestinationEntity, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DestinationStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UpsertParticipant(ctx context.Context, p *entity.EventParticipant) error
	RemoveParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	GetParticipationsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.EventParticipant, error)
	GetParticipantsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error)
}

// ===================== Destinations =====================

func (r *DestinationRepository) Create(ctx context.Context, d *entity.Destination) (*entity.Destination, error) {
	query := `
		INSERT INTO destinations (user_id, place_name, slug, latitude, longitude, scheduled_date, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8)
		RETURNING ` + destinationColumns

	var created entity.Destination
	err := r.DB.GetContext(ctx, &created, query,
		d.UserID, d.PlaceName, d.Slug, d.Latitude, d.Longitude,
		d.ScheduledDate, d.ScheduledTime, d.Status)
	if err != nil {
		logger.Error("DestinationRepository:Create:Error:", err)
		return nil, err
	}

	return &created, nil
}

func (r *DestinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`

	var d entity.Destination
	err := r.DB.GetContext(ctx, &d, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("DestinationRepository:GetByID:Error:", err)
		return nil, err
	}

	return &d, nil
}

func (r *DestinationRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Destination, error) {
	query := `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE user_id = $1
		ORDER BY scheduled_date, scheduled_time NULLS FIRST
	`

	var destinations []entity.Destination
	err := r.DB.SelectContext(ctx, &destinations, query, ownerID)
	if err != nil {
		logger.Error("DestinationRepository:GetByOwnerID:Error:", err)
		return nil, err
	}

	return destinations, nil
}

func (r *DestinationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Destination, error) {
	if len(ids) == 0 {
		return []entity.Destination{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+destinationColumns+` FROM destinations WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.SQLx().Rebind(query)

	var destinations []entity.Destination
	err = r.DB.SelectContext(ctx, &destinations, query, args...)
	if err != nil {
		logger.Error("DestinationRepository:GetByIDs:Error:", err)
		return nil, err
	}

	return destinations, nil
}

func (r *DestinationRepository) GetActive(ctx context.Context) ([]entity.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE status = $1`

	var destinations []entity.Destination
	err := r.DB.SelectContext(ctx, &destinations, query, entity.DestinationStatusActive)
	if err != nil {
		logger.Error("DestinationRepository:GetActive:Error:", err)
		return nil, err
	}

	return destinations, nil
}

func (r *DestinationRepository) GetActivePage(ctx context.Context, p params.QueryParams) (*entity.PaginatedDestinationEntity, error) {
	baseQuery := `FROM destinations WHERE status = $1`
	args := []any{entity.DestinationStatusActive}

	if p.Search != "" {
		baseQuery += ` AND place_name ILIKE $2`
		args = append(args, "%"+p.Search+"%")
	}

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...)
	if err != nil {
		logger.Error("DestinationRepository:GetActivePage:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT ` + destinationColumns + ` ` + baseQuery + `
		ORDER BY scheduled_date, scheduled_time NULLS FIRST
		LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	var destinations []entity.Destination
	err = r.DB.SelectContext(ctx, &destinations, query, args...)
	if err != nil {
		logger.Error("DestinationRepository:GetActivePage:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedDestinationEntity{
		Items:      destinations,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// UpdateStatus moves an active destination into a terminal status. The
// status guard makes the transition one-way: past and cancelled rows are
// never rewritten, so concurrent sweep/cancel writers can only race toward
// one of the two terminal states.
func (r *DestinationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DestinationStatus) (bool, error) {
	query := `
		UPDATE destinations
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING id
	`

	var updatedID uuid.UUID
	err := r.DB.GetContext(ctx, &updatedID, query, id, status, entity.DestinationStatusActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("DestinationRepository:UpdateStatus:Error:", err)
		return false, err
	}

	return true, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM destinations WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("DestinationRepository:Delete:Error:", err)
		return err
	}
	return nil
}

// ===================== Participants =====================

func (r *DestinationRepository) UpsertParticipant(ctx context.Context, p *entity.EventParticipant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, participation_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET participation_type = $3
	`

	err := r.DB.ExecContext(ctx, query, p.EventID, p.UserID, p.ParticipationType)
	if err != nil {
		logger.Error("DestinationRepository:UpsertParticipant:Error:", err)
		return err
	}

	return nil
}

func (r *DestinationRepository) RemoveParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		logger.Error("DestinationRepository:RemoveParticipant:Error:", err)
		return err
	}
	return nil
}

func (r *DestinationRepository) GetParticipationsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.EventParticipant, error) {
	query := `
		SELECT event_id, user_id, participation_type, created_at
		FROM event_participants
		WHERE user_id = $1
	`

	var participations []entity.EventParticipant
	err := r.DB.SelectContext(ctx, &participations, query, userID)
	if err != nil {
		logger.Error("DestinationRepository:GetParticipationsByUserID:Error:", err)
		return nil, err
	}

	return participations, nil
}

func (r *DestinationRepository) GetParticipantsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	query := `
		SELECT ep.event_id, ep.user_id, ep.participation_type,
		       u.name AS user_name, u.email AS user_email, u.picture_url AS user_picture_url
		FROM event_participants ep
		LEFT JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1
		ORDER BY ep.created_at
	`

	var participants []entity.ParticipantWithUser
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("DestinationRepository:GetParticipantsByEventID:Error:", err)
		return nil, err
	}

	return participants, nil
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
