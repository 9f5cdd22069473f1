package reservations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
	"github.com/codehunter/hotelbooking/pkg/ptr"
	"github.com/codehunter/hotelbooking/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservation *domain.Reservation
	getErr      error
	byGuest     []*domain.Reservation
	lastFilter  domain.GuestReservationsFilter
	confirmed   []*domain.Reservation
	casErr      error
	casCalls    int
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.reservation, nil
}

func (r *fakeReservationRepo) GetByGuest(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error) {
	r.lastFilter = filter
	return r.byGuest, nil
}

func (r *fakeReservationRepo) ListConfirmedBetween(ctx context.Context, rng domain.DateRange) ([]*domain.Reservation, error) {
	return r.confirmed, nil
}

func (r *fakeReservationRepo) UpdateStatusCAS(ctx context.Context, id int64, from, to domain.ReservationStatus, expectedVersion int64) error {
	r.casCalls++
	return r.casErr
}

type fakeRoomRepo struct {
	rooms []*domain.Room
}

func (r *fakeRoomRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Room, error) {
	return r.rooms, nil
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:       10,
		RoomID:   7,
		GuestID:  42,
		CheckIn:  types.Date("2026-09-15"),
		CheckOut: types.Date("2026-09-18"),
		Status:   domain.StatusConfirmed,
		Version:  1,
	}
}

func newTestService(repo *fakeReservationRepo, rooms *fakeRoomRepo) *Service {
	return NewService(repo, rooms, fakeTxManager{}, fakeLogger{})
}

func TestGetByID_Success(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{reservation: confirmedReservation()}, &fakeRoomRepo{})

	resp, err := svc.GetByID(context.Background(), 10, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2026-09-15", resp.CheckIn)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{reservation: confirmedReservation()}, &fakeRoomRepo{})

	_, err := svc.GetByID(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{getErr: reservationRepo.ErrReservationNotFound}, &fakeRoomRepo{})

	_, err := svc.GetByID(context.Background(), 10, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetGuestReservations_StatusFilter(t *testing.T) {
	repo := &fakeReservationRepo{byGuest: []*domain.Reservation{confirmedReservation()}}
	svc := newTestService(repo, &fakeRoomRepo{})

	resp, err := svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: 42,
		Status:  ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Reservations, 1)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}

func TestGetGuestReservations_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, &fakeRoomRepo{})

	_, err := svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: 42,
		Status:  ptr.Ptr("checked-in"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestComplete_Success(t *testing.T) {
	repo := &fakeReservationRepo{reservation: confirmedReservation()}
	svc := newTestService(repo, &fakeRoomRepo{})

	resp, err := svc.Complete(context.Background(), 10, &models.CompleteReservationRequest{
		GuestID:         42,
		ExpectedVersion: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, int64(2), resp.Version)
	assert.Equal(t, 1, repo.casCalls)
}

func TestComplete_OnlyConfirmedCanComplete(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusCancelled,
		domain.StatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			res := confirmedReservation()
			res.Status = status
			repo := &fakeReservationRepo{reservation: res}
			svc := newTestService(repo, &fakeRoomRepo{})

			_, err := svc.Complete(context.Background(), 10, &models.CompleteReservationRequest{
				GuestID:         42,
				ExpectedVersion: 1,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, repo.casCalls)
		})
	}
}

func TestComplete_VersionConflict(t *testing.T) {
	repo := &fakeReservationRepo{
		reservation: confirmedReservation(),
		casErr:      reservationRepo.ErrVersionConflict,
	}
	svc := newTestService(repo, &fakeRoomRepo{})

	_, err := svc.Complete(context.Background(), 10, &models.CompleteReservationRequest{
		GuestID:         42,
		ExpectedVersion: 0,
	})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestSnapshot_Success(t *testing.T) {
	repo := &fakeReservationRepo{confirmed: []*domain.Reservation{confirmedReservation()}}
	rooms := &fakeRoomRepo{rooms: []*domain.Room{
		{ID: 7, Number: "101", Type: "standard", Capacity: 2, Active: true},
	}}
	svc := newTestService(repo, rooms)

	resp, err := svc.Snapshot(context.Background(), &models.SnapshotRequest{
		From: types.Date("2026-09-01"),
		To:   types.Date("2026-10-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", resp.From)
	assert.Len(t, resp.Rooms, 1)
	assert.Len(t, resp.Reservations, 1)
	assert.False(t, resp.GeneratedAt.IsZero())
}

func TestSnapshot_InvalidPeriod(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, &fakeRoomRepo{})

	_, err := svc.Snapshot(context.Background(), &models.SnapshotRequest{
		From: types.Date("2026-10-01"),
		To:   types.Date("2026-09-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
