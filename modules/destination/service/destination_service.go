package service

import (
	"context"
	"sort"
	"time"

	"go-destinations-api/core/errors"
	"go-destinations-api/core/logger"
	"go-destinations-api/core/params"
	"go-destinations-api/core/utils"
	authRepo "go-destinations-api/modules/auth/repository"
	"go-destinations-api/modules/destination/dto"
	"go-destinations-api/modules/destination/entity"
	"go-destinations-api/modules/destination/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DestinationService handles destination business logic
type DestinationService struct {
	repo  repository.DestinationRepositoryInterface
	users authRepo.AuthRepositoryInterface
}

// DestinationServiceInterface defines the service contract
type DestinationServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateDestinationRequest) (*entity.Destination, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DestinationDetailResponse, *errors.AppError)
	ListForUser(ctx context.Context, userID uuid.UUID) []dto.DestinationView
	Browse(ctx context.Context, p params.QueryParams) (*dto.PaginatedDestinationResponse, *errors.AppError)
	Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, now time.Time) (*entity.Destination, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) *errors.AppError
	Participate(ctx context.Context, id uuid.UUID, userID uuid.UUID, participationType string) (*dto.ParticipantResponse, *errors.AppError)
	Unparticipate(ctx context.Context, id uuid.UUID, userID uuid.UUID) *errors.AppError
}

func NewDestinationService(repo repository.DestinationRepositoryInterface, users authRepo.AuthRepositoryInterface) DestinationServiceInterface {
	return &DestinationService{
		repo:  repo,
		users: users,
	}
}

// Create pins a new destination event, active by default.
func (s *DestinationService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateDestinationRequest) (*entity.Destination, *errors.AppError) {
	if req.PlaceName == "" || req.ScheduledDate == "" {
		return nil, errors.New(errors.ErrInvalidInput, "place_name and scheduled_date are required")
	}

	var scheduledTime *string
	if req.ScheduledTime != "" {
		scheduledTime = &req.ScheduledTime
	}

	// Validate the schedule up front so malformed values never reach the
	// table, where the sweep would trip over them on every pass.
	if _, appErr := EffectiveTime(req.ScheduledDate, scheduledTime); appErr != nil {
		return nil, appErr
	}

	d := &entity.Destination{
		UserID:        ownerID,
		PlaceName:     req.PlaceName,
		Slug:          slug.Make(req.PlaceName) + "-" + utils.GenerateID(),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: scheduledTime,
		Status:        entity.DestinationStatusActive,
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create destination", err)
	}

	return created, nil
}

// GetByID returns a single destination with organizer info and the full
// participant list split into joined/interested.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DestinationDetailResponse, *errors.AppError) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get destination", err)
	}
	if d == nil {
		return nil, errors.New(errors.ErrNotFound, "Destination not found")
	}

	resp := &dto.DestinationDetailResponse{
		Destination:  *d,
		Participants: []dto.ParticipantInfo{},
		Joined:       []dto.ParticipantInfo{},
		Interested:   []dto.ParticipantInfo{},
	}

	organizer, err := s.users.GetUserByID(ctx, d.UserID)
	if err == nil && organizer != nil {
		resp.Organizer = &dto.OrganizerInfo{
			Name:       organizer.Name,
			Email:      &organizer.Email,
			PictureURL: organizer.PictureURL,
		}
	}

	participants, err := s.repo.GetParticipantsByEventID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get participants", err)
	}

	for i := range participants {
		info := dto.ToParticipantInfo(&participants[i])
		resp.Participants = append(resp.Participants, info)
		switch participants[i].ParticipationType {
		case entity.ParticipationJoined:
			resp.Joined = append(resp.Joined, info)
		case entity.ParticipationInterested:
			resp.Interested = append(resp.Interested, info)
		}
	}
	resp.JoinedCount = len(resp.Joined)
	resp.InterestedCount = len(resp.Interested)

	return resp, nil
}

// ListForUser merges the events a user organizes with the events they
// participate in into one deduplicated, annotated, sorted list.
//
// Any failure along the way degrades to an empty list instead of an error;
// that is the documented read-path contract for this endpoint.
func (s *DestinationService) ListForUser(ctx context.Context, userID uuid.UUID) []dto.DestinationView {
	owned, err := s.repo.GetByOwnerID(ctx, userID)
	if err != nil {
		logger.Error("DestinationService:ListForUser:GetByOwnerID:Error:", err)
		return []dto.DestinationView{}
	}

	participations, err := s.repo.GetParticipationsByUserID(ctx, userID)
	if err != nil {
		logger.Error("DestinationService:ListForUser:GetParticipationsByUserID:Error:", err)
		return []dto.DestinationView{}
	}

	// Pre-index participation type by event id so the merge below stays a
	// straight map lookup.
	typeByEvent := make(map[uuid.UUID]entity.ParticipationType, len(participations))
	participatedIDs := make([]uuid.UUID, 0, len(participations))
	for _, p := range participations {
		typeByEvent[p.EventID] = p.ParticipationType
		participatedIDs = append(participatedIDs, p.EventID)
	}

	participated, err := s.repo.GetByIDs(ctx, participatedIDs)
	if err != nil {
		logger.Error("DestinationService:ListForUser:GetByIDs:Error:", err)
		return []dto.DestinationView{}
	}

	// Two deterministic passes: owned events first, then participated
	// events not already present. Ownership wins when the same event shows
	// up in both relations, so an organizer who joined their own event is
	// reported once, as organizer.
	type taggedDestination struct {
		dest              entity.Destination
		isOrganizer       bool
		participationType *entity.ParticipationType
	}
	seen := make(map[uuid.UUID]bool, len(owned)+len(participated))
	merged := make([]taggedDestination, 0, len(owned)+len(participated))
	for _, d := range owned {
		seen[d.ID] = true
		merged = append(merged, taggedDestination{dest: d, isOrganizer: true})
	}
	for _, d := range participated {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		tagged := taggedDestination{dest: d}
		if t, ok := typeByEvent[d.ID]; ok {
			tagged.participationType = &t
		} else {
			// A participated event without a matching participation record
			// points at a data inconsistency; tolerate it but leave a trace.
			logger.Warn("DestinationService:ListForUser:MissingParticipationRecord",
				"event_id", d.ID.String(), "user_id", userID.String())
		}
		merged = append(merged, tagged)
	}

	// Resolve organizer display names in one batch.
	ownerIDs := make([]uuid.UUID, 0, len(merged))
	seenOwner := make(map[uuid.UUID]bool, len(merged))
	for _, t := range merged {
		if !seenOwner[t.dest.UserID] {
			seenOwner[t.dest.UserID] = true
			ownerIDs = append(ownerIDs, t.dest.UserID)
		}
	}
	nameByOwner := make(map[uuid.UUID]string, len(ownerIDs))
	owners, err := s.users.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		logger.Error("DestinationService:ListForUser:GetUsersByIDs:Error:", err)
		return []dto.DestinationView{}
	}
	for i := range owners {
		nameByOwner[owners[i].ID] = owners[i].DisplayName()
	}

	views := make([]dto.DestinationView, 0, len(merged))
	for i := range merged {
		t := &merged[i]
		views = append(views, dto.ToDestinationView(&t.dest, t.isOrganizer, t.participationType, nameByOwner[t.dest.UserID]))
	}

	// Ascending by (scheduled_date, scheduled_time); an absent time sorts
	// before any real value, so all-day events float first within their
	// date. The empty-string key makes that a stable, deterministic
	// tie-break rather than an accident of representation.
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].ScheduledDate != views[j].ScheduledDate {
			return views[i].ScheduledDate < views[j].ScheduledDate
		}
		return timeSortKey(views[i].ScheduledTime) < timeSortKey(views[j].ScheduledTime)
	})

	return views
}

func timeSortKey(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}

// Browse lists active destinations for discovery, newest schedule first.
func (s *DestinationService) Browse(ctx context.Context, p params.QueryParams) (*dto.PaginatedDestinationResponse, *errors.AppError) {
	page, err := s.repo.GetActivePage(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list destinations", err)
	}

	return &dto.PaginatedDestinationResponse{
		Items:      page.Items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// Cancel transitions an active destination to cancelled on behalf of its
// organizer.
func (s *DestinationService) Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, now time.Time) (*entity.Destination, *errors.AppError) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get destination", err)
	}
	if d == nil {
		return nil, errors.New(errors.ErrNotFound, "Destination not found")
	}

	if appErr := CanCancel(d, requesterID, now); appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.UpdateStatus(ctx, id, entity.DestinationStatusCancelled)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to cancel destination", err)
	}
	if !updated {
		// The status guard lost a race, most likely against the sweep
		// marking the event past in between our read and write.
		return nil, errors.New(errors.ErrPastEvent, "destination is no longer active")
	}

	d.Status = entity.DestinationStatusCancelled
	return d, nil
}

// Delete removes a destination entirely; organizer only.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) *errors.AppError {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get destination", err)
	}
	if d == nil {
		return errors.New(errors.ErrNotFound, "Destination not found")
	}
	if d.UserID != requesterID {
		return errors.New(errors.ErrForbidden, "only the organizer can delete this destination")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete destination", err)
	}
	return nil
}

// Participate joins or marks interest in an event. A repeated request for
// the same (event, user) pair overwrites the participation type.
func (s *DestinationService) Participate(ctx context.Context, id uuid.UUID, userID uuid.UUID, participationType string) (*dto.ParticipantResponse, *errors.AppError) {
	kind := entity.ParticipationType(participationType)
	if !kind.Valid() {
		return nil, errors.New(errors.ErrInvalidInput, "participation type must be 'joined' or 'interested'")
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get destination", err)
	}
	if d == nil {
		return nil, errors.New(errors.ErrNotFound, "Destination not found")
	}

	participant := &entity.EventParticipant{
		EventID:           id,
		UserID:            userID,
		ParticipationType: kind,
	}
	if err := s.repo.UpsertParticipant(ctx, participant); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to save participation", err)
	}

	return &dto.ParticipantResponse{
		EventID:           id.String(),
		UserID:            userID.String(),
		ParticipationType: participationType,
	}, nil
}

// Unparticipate removes a user's participation from an event.
func (s *DestinationService) Unparticipate(ctx context.Context, id uuid.UUID, userID uuid.UUID) *errors.AppError {
	if err := s.repo.RemoveParticipant(ctx, id, userID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove participation", err)
	}
	return nil
}
