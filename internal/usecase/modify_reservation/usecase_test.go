package modify_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	"github.com/codehunter/hotelbooking/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// commitConflictTxManager доводит fn до конца и падает на коммите, как
// Postgres при SSI-конфликте под SERIALIZABLE
type commitConflictTxManager struct{}

func (commitConflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
}

type fakeRepo struct {
	reservation *domain.Reservation
	getErr      error
	overlapping []*domain.Reservation
	updateErr   error
	updateCalls int
	lastFilter  domain.OverlapFilter
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.reservation, nil
}

func (r *fakeRepo) FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	r.lastFilter = filter
	return r.overlapping, nil
}

func (r *fakeRepo) UpdateDatesCAS(ctx context.Context, id int64, rng domain.DateRange, expectedVersion int64) error {
	r.updateCalls++
	return r.updateErr
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
		Version:  1,
	}
}

func newTestUseCase(repo *fakeRepo, inv *fakeInvalidator) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, inv, Policy{MaxStayNights: 30}, fakeLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		ReservationID:   10,
		GuestID:         42,
		NewCheckIn:      types.Date("2026-09-20"),
		NewCheckOut:     types.Date("2026-09-23"),
		ExpectedVersion: 1,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	inv := &fakeInvalidator{}
	uc := newTestUseCase(repo, inv)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, types.Date("2026-09-20"), resp.CheckIn)
	assert.Equal(t, types.Date("2026-09-23"), resp.CheckOut)
	assert.Equal(t, int64(2), resp.Version)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, []int64{7}, inv.rooms)

	// Бронирование не конфликтует само с собой
	require.NotNil(t, repo.lastFilter.ExcludeReservationID)
	assert.Equal(t, int64(10), *repo.lastFilter.ExcludeReservationID)
}

func TestExecute_NewDatesUnavailable(t *testing.T) {
	repo := &fakeRepo{
		reservation: confirmedReservation(),
		overlapping: []*domain.Reservation{
			{ID: 99, RoomID: 7, CheckIn: types.Date("2026-09-21"), CheckOut: types.Date("2026-09-25")},
		},
	}
	inv := &fakeInvalidator{}
	uc := newTestUseCase(repo, inv)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Атомарность: при конфликте исходное бронирование не тронуто
	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, inv.rooms)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: reservationRepo.ErrReservationNotFound}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	req := validRequest()
	req.GuestID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	res := confirmedReservation()
	res.Status = domain.StatusCancelled
	repo := &fakeRepo{reservation: res}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCannotModify)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_StaleVersion(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	req := validRequest()
	req.ExpectedVersion = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_CASVersionConflict(t *testing.T) {
	repo := &fakeRepo{
		reservation: confirmedReservation(),
		updateErr:   reservationRepo.ErrVersionConflict,
	}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestExecute_CommitSerializationFailureMapsToUnavailable(t *testing.T) {
	// Конфликт всплыл только на COMMIT: запросы внутри транзакции прошли,
	// но параллельная транзакция успела занять новые даты
	repo := &fakeRepo{reservation: confirmedReservation()}
	inv := &fakeInvalidator{}
	uc := NewUseCase(repo, commitConflictTxManager{}, inv, Policy{MaxStayNights: 30}, fakeLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Транзакция не закоммичена, кэш не инвалидируется
	assert.Empty(t, inv.rooms)
}

func TestExecute_InvalidNewRange(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	req := validRequest()
	req.NewCheckIn = types.Date("2026-09-23")
	req.NewCheckOut = types.Date("2026-09-20")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_NewCheckInInPast(t *testing.T) {
	repo := &fakeRepo{reservation: confirmedReservation()}
	uc := newTestUseCase(repo, &fakeInvalidator{})

	req := validRequest()
	req.NewCheckIn = types.Date("2026-08-20")
	req.NewCheckOut = types.Date("2026-08-25")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}
