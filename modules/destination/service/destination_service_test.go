package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-destinations-api/core/errors"
	"go-destinations-api/core/params"
	authEntity "go-destinations-api/modules/auth/entity"
	"go-destinations-api/modules/destination/dto"
	"go-destinations-api/modules/destination/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===================== Mocks =====================

type mockDestinationRepo struct {
	mock.Mock
}

func (m *mockDestinationRepo) Create(ctx context.Context, d *entity.Destination) (*entity.Destination, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Destination), args.Error(1)
}

func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Destination), args.Error(1)
}

func (m *mockDestinationRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Destination, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Destination), args.Error(1)
}

func (m *mockDestinationRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Destination, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Destination), args.Error(1)
}

func (m *mockDestinationRepo) GetActive(ctx context.Context) ([]entity.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Destination), args.Error(1)
}

func (m *mockDestinationRepo) GetActivePage(ctx context.Context, p params.QueryParams) (*entity.PaginatedDestinationEntity, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaginatedDestinationEntity), args.Error(1)
}

func (m *mockDestinationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DestinationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDestinationRepo) UpsertParticipant(ctx context.Context, p *entity.EventParticipant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockDestinationRepo) RemoveParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *mockDestinationRepo) GetParticipationsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.EventParticipant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EventParticipant), args.Error(1)
}

func (m *mockDestinationRepo) GetParticipantsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ParticipantWithUser), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authEntity.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByGoogleID(ctx context.Context, googleID string) (*authEntity.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authEntity.User), args.Error(1)
}

func (m *mockUserRepo) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]authEntity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authEntity.User), args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *authEntity.User) (*authEntity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authEntity.User), args.Error(1)
}

func (m *mockUserRepo) UpdateUserProfile(ctx context.Context, user *authEntity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	args := m.Called(ctx, state, expiresAt)
	return args.Error(0)
}

func (m *mockUserRepo) GetOAuthState(ctx context.Context, state string) (*authEntity.OAuthState, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authEntity.OAuthState), args.Error(1)
}

func (m *mockUserRepo) DeleteOAuthState(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *mockUserRepo) CleanupExpiredOAuthStates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== Helpers =====================

func newServiceWithMocks(t *testing.T) (DestinationServiceInterface, *mockDestinationRepo, *mockUserRepo) {
	t.Helper()
	repo := new(mockDestinationRepo)
	users := new(mockUserRepo)
	return NewDestinationService(repo, users), repo, users
}

func destination(owner uuid.UUID, place, date string, clock *string) entity.Destination {
	return entity.Destination{
		ID:            uuid.New(),
		UserID:        owner,
		PlaceName:     place,
		ScheduledDate: date,
		ScheduledTime: clock,
		Status:        entity.DestinationStatusActive,
	}
}

func user(id uuid.UUID, name string) authEntity.User {
	return authEntity.User{ID: id, Email: name + "@example.com", Name: &name}
}

// ===================== ListForUser =====================

func TestListForUser_OwnershipWinsOverParticipation(t *testing.T) {
	svc, repo, users := newServiceWithMocks(t)
	userID := uuid.New()

	// The same event appears both as owned and as joined.
	owned := destination(userID, "Cafe Central", "2024-06-01", nil)
	repo.On("GetByOwnerID", mock.Anything, userID).Return([]entity.Destination{owned}, nil)
	repo.On("GetParticipationsByUserID", mock.Anything, userID).Return([]entity.EventParticipant{
		{EventID: owned.ID, UserID: userID, ParticipationType: entity.ParticipationJoined},
	}, nil)
	repo.On("GetByIDs", mock.Anything, []uuid.UUID{owned.ID}).Return([]entity.Destination{owned}, nil)
	users.On("GetUsersByIDs", mock.Anything, mock.Anything).Return([]authEntity.User{user(userID, "Ana")}, nil)

	views := svc.ListForUser(context.Background(), userID)

	require.Len(t, views, 1)
	assert.True(t, views[0].IsOrganizer)
	assert.Nil(t, views[0].ParticipationType)
	assert.Equal(t, "Ana", views[0].OrganizerName)
}

func TestListForUser_ParticipatedEventAnnotated(t *testing.T) {
	svc, repo, users := newServiceWithMocks(t)
	userID := uuid.New()
	organizerID := uuid.New()

	joined := destination(organizerID, "Stadtpark", "2024-06-05", strPtr("18:00:00"))
	repo.On("GetByOwnerID", mock.Anything, userID).Return([]entity.Destination{}, nil)
	repo.On("GetParticipationsByUserID", mock.Anything, userID).Return([]entity.EventParticipant{
		{EventID: joined.ID, UserID: userID, ParticipationType: entity.ParticipationJoined},
	}, nil)
	repo.On("GetByIDs", mock.Anything, []uuid.UUID{joined.ID}).Return([]entity.Destination{joined}, nil)
	users.On("GetUsersByIDs", mock.Anything, []uuid.UUID{organizerID}).Return([]authEntity.User{user(organizerID, "Ben")}, nil)

	views := svc.ListForUser(context.Background(), userID)

	require.Len(t, views, 1)
	assert.False(t, views[0].IsOrganizer)
	require.NotNil(t, views[0].ParticipationType)
	assert.Equal(t, "joined", *views[0].ParticipationType)
	assert.Equal(t, "Ben", views[0].OrganizerName)
}

func TestListForUser_SortedByDateThenTimeWithAllDayFirst(t *testing.T) {
	svc, repo, users := newServiceWithMocks(t)
	userID := uuid.New()

	timed := destination(userID, "Morning Run", "2024-06-01", strPtr("09:00:00"))
	allDay := destination(userID, "Picnic", "2024-06-01", nil)
	later := destination(userID, "Dinner", "2024-06-02", strPtr("19:00:00"))

	repo.On("GetByOwnerID", mock.Anything, userID).Return([]entity.Destination{later, timed, allDay}, nil)
	repo.On("GetParticipationsByUserID", mock.Anything, userID).Return([]entity.EventParticipant{}, nil)
	repo.On("GetByIDs", mock.Anything, []uuid.UUID{}).Return([]entity.Destination{}, nil)
	users.On("GetUsersByIDs", mock.Anything, mock.Anything).Return([]authEntity.User{user(userID, "Ana")}, nil)

	views := svc.ListForUser(context.Background(), userID)

	require.Len(t, views, 3)
	assert.Equal(t, "Picnic", views[0].PlaceName)
	assert.Equal(t, "Morning Run", views[1].PlaceName)
	assert.Equal(t, "Dinner", views[2].PlaceName)
}

func TestListForUser_RepoFailureDegradesToEmptyList(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	userID := uuid.New()

	repo.On("GetByOwnerID", mock.Anything, userID).Return(nil, fmt.Errorf("connection refused"))

	views := svc.ListForUser(context.Background(), userID)

	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestListForUser_MissingParticipationRecordTolerated(t *testing.T) {
	svc, repo, users := newServiceWithMocks(t)
	userID := uuid.New()
	organizerID := uuid.New()

	// GetByIDs returns an event no participation record points at; the
	// entry is kept with a nil participation type.
	stray := destination(organizerID, "Stray", "2024-06-03", nil)
	known := destination(organizerID, "Known", "2024-06-01", nil)
	repo.On("GetByOwnerID", mock.Anything, userID).Return([]entity.Destination{}, nil)
	repo.On("GetParticipationsByUserID", mock.Anything, userID).Return([]entity.EventParticipant{
		{EventID: known.ID, UserID: userID, ParticipationType: entity.ParticipationInterested},
	}, nil)
	repo.On("GetByIDs", mock.Anything, []uuid.UUID{known.ID}).Return([]entity.Destination{known, stray}, nil)
	users.On("GetUsersByIDs", mock.Anything, mock.Anything).Return([]authEntity.User{user(organizerID, "Ben")}, nil)

	views := svc.ListForUser(context.Background(), userID)

	require.Len(t, views, 2)
	assert.Equal(t, "Known", views[0].PlaceName)
	require.NotNil(t, views[0].ParticipationType)
	assert.Equal(t, "interested", *views[0].ParticipationType)
	assert.Equal(t, "Stray", views[1].PlaceName)
	assert.Nil(t, views[1].ParticipationType)
}

// ===================== Create =====================

func TestCreate_ValidatesScheduleBeforePersisting(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)

	_, appErr := svc.Create(context.Background(), uuid.New(), &dto.CreateDestinationRequest{
		PlaceName:     "Cafe Central",
		ScheduledDate: "06/01/2024",
	})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrMalformedDate, appErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AllDayEvent(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	ownerID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *entity.Destination) bool {
		return d.UserID == ownerID &&
			d.Status == entity.DestinationStatusActive &&
			d.ScheduledTime == nil &&
			d.Slug != ""
	})).Return(&entity.Destination{ID: uuid.New(), UserID: ownerID}, nil)

	created, appErr := svc.Create(context.Background(), ownerID, &dto.CreateDestinationRequest{
		PlaceName:     "Cafe Central",
		Latitude:      48.2,
		Longitude:     16.36,
		ScheduledDate: "2024-06-01",
	})

	require.Nil(t, appErr)
	require.NotNil(t, created)
	repo.AssertExpectations(t)
}

// ===================== Cancel =====================

func TestCancel_Success(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	ownerID := uuid.New()
	d := destination(ownerID, "Cafe Central", "2024-06-01", strPtr("10:00:00"))
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)
	repo.On("UpdateStatus", mock.Anything, d.ID, entity.DestinationStatusCancelled).Return(true, nil)

	cancelled, appErr := svc.Cancel(context.Background(), d.ID, ownerID, now)

	require.Nil(t, appErr)
	assert.Equal(t, entity.DestinationStatusCancelled, cancelled.Status)
	repo.AssertExpectations(t)
}

func TestCancel_NotFound(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, appErr := svc.Cancel(context.Background(), id, uuid.New(), time.Now().UTC())

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCancel_NonOwnerForbidden(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	d := destination(uuid.New(), "Cafe Central", "2024-06-01", strPtr("10:00:00"))
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)

	_, appErr := svc.Cancel(context.Background(), d.ID, uuid.New(), now)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// The read said active but the guarded write matched no row: the sweep won
// the race in between.
func TestCancel_LostRaceAgainstSweep(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	ownerID := uuid.New()
	d := destination(ownerID, "Cafe Central", "2024-06-01", strPtr("10:00:00"))
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)
	repo.On("UpdateStatus", mock.Anything, d.ID, entity.DestinationStatusCancelled).Return(false, nil)

	_, appErr := svc.Cancel(context.Background(), d.ID, ownerID, now)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrPastEvent, appErr.Code)
}

// ===================== Participate =====================

func TestParticipate_InvalidTypeRejected(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)

	_, appErr := svc.Participate(context.Background(), uuid.New(), uuid.New(), "maybe")

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	repo.AssertNotCalled(t, "UpsertParticipant", mock.Anything, mock.Anything)
}

func TestParticipate_UpsertsRecord(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	userID := uuid.New()
	d := destination(uuid.New(), "Cafe Central", "2024-06-01", nil)

	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)
	repo.On("UpsertParticipant", mock.Anything, mock.MatchedBy(func(p *entity.EventParticipant) bool {
		return p.EventID == d.ID && p.UserID == userID && p.ParticipationType == entity.ParticipationInterested
	})).Return(nil)

	resp, appErr := svc.Participate(context.Background(), d.ID, userID, "interested")

	require.Nil(t, appErr)
	assert.Equal(t, "interested", resp.ParticipationType)
	repo.AssertExpectations(t)
}

// ===================== Delete =====================

func TestDelete_NonOwnerForbidden(t *testing.T) {
	svc, repo, _ := newServiceWithMocks(t)
	d := destination(uuid.New(), "Cafe Central", "2024-06-01", nil)

	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)

	appErr := svc.Delete(context.Background(), d.ID, uuid.New())

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// ===================== GetByID =====================

func TestGetByID_SplitsParticipantsByType(t *testing.T) {
	svc, repo, users := newServiceWithMocks(t)
	organizerID := uuid.New()
	d := destination(organizerID, "Cafe Central", "2024-06-01", nil)

	organizer := user(organizerID, "Ana")
	repo.On("GetByID", mock.Anything, d.ID).Return(&d, nil)
	users.On("GetUserByID", mock.Anything, organizerID).Return(&organizer, nil)
	repo.On("GetParticipantsByEventID", mock.Anything, d.ID).Return([]entity.ParticipantWithUser{
		{EventID: d.ID, UserID: uuid.New(), ParticipationType: entity.ParticipationJoined},
		{EventID: d.ID, UserID: uuid.New(), ParticipationType: entity.ParticipationJoined},
		{EventID: d.ID, UserID: uuid.New(), ParticipationType: entity.ParticipationInterested},
	}, nil)

	resp, appErr := svc.GetByID(context.Background(), d.ID)

	require.Nil(t, appErr)
	assert.Len(t, resp.Participants, 3)
	assert.Equal(t, 2, resp.JoinedCount)
	assert.Equal(t, 1, resp.InterestedCount)
	require.NotNil(t, resp.Organizer)
	assert.Equal(t, "Ana", *resp.Organizer.Name)
}
