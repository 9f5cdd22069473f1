package cancel_reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	"github.com/codehunter/hotelbooking/pkg/ptr"
	"github.com/codehunter/hotelbooking/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	reservation *domain.Reservation
	getErr      error
	cancelErr   error
	cancelCalls int
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.reservation, nil
}

func (r *fakeRepo) CancelCAS(ctx context.Context, id int64, expectedVersion int64, reason *string) error {
	r.cancelCalls++
	return r.cancelErr
}

type fakeInvalidator struct {
	rooms []int64
}

func (i *fakeInvalidator) Invalidate(ctx context.Context, roomID int64) error {
	i.rooms = append(i.rooms, roomID)
	return nil
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:       10,
		RoomID:   7,
		GuestID:  42,
		CheckIn:  types.Date("2026-09-15"),
		CheckOut: types.Date("2026-09-18"),
		Status:   domain.StatusConfirmed,
		Version:  2,
	}
}

func validRequest() *Request {
	return &Request{
		ReservationID:   10,
		GuestID:         42,
		ExpectedVersion: 2,
		Reason:          ptr.Ptr("план изменился"),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	inv := &fakeInvalidator{}
	uc := NewUseCase(repo, inv, fakeLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ReservationID)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, int64(3), resp.Version)
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Equal(t, []int64{7}, inv.rooms)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: reservationRepo.ErrReservationNotFound}
	uc := NewUseCase(repo, &fakeInvalidator{}, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Zero(t, repo.cancelCalls)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	uc := NewUseCase(repo, &fakeInvalidator{}, fakeLogger{})

	req := validRequest()
	req.GuestID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelCalls)
}

func TestExecute_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			res := confirmedReservation()
			res.Status = status
			repo := &fakeRepo{reservation: res}
			inv := &fakeInvalidator{}
			uc := NewUseCase(repo, inv, fakeLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrCannotCancel)
			// Повторная отмена и отмена завершенного не мутируют строку
			assert.Zero(t, repo.cancelCalls)
			assert.Empty(t, inv.rooms)
		})
	}
}

func TestExecute_VersionConflict(t *testing.T) {
	repo := &fakeRepo{
		reservation: confirmedReservation(),
		cancelErr:   reservationRepo.ErrVersionConflict,
	}
	inv := &fakeInvalidator{}
	uc := NewUseCase(repo, inv, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Empty(t, inv.rooms)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero reservation id", func(req *Request) { req.ReservationID = 0 }},
		{"zero guest id", func(req *Request) { req.GuestID = 0 }},
		{"negative version", func(req *Request) { req.ExpectedVersion = -1 }},
		{"reason too long", func(req *Request) {
			long := make([]byte, domain.MaxCancellationReasonLength+1)
			for i := range long {
				long[i] = 'a'
			}
			req.Reason = ptr.Ptr(string(long))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{reservation: confirmedReservation()}
			uc := NewUseCase(repo, &fakeInvalidator{}, fakeLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.cancelCalls)
		})
	}
}
