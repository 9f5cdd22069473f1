package book_room

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
	"github.com/codehunter/hotelbooking/pkg/dbmetrics"
	"github.com/codehunter/hotelbooking/pkg/txmanager"
	"github.com/codehunter/hotelbooking/pkg/types"
)

const testIdempotencyKey = "2b0c9f6e-1c44-4c77-9d3a-5a2f6e8b1d90"

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// commitFailTx транзакция, падающая на коммите: под SERIALIZABLE Postgres
// обнаруживает SSI-конфликты именно в этот момент, а не на запросах
type commitFailTx struct {
	commitErr error
	onCommit  func()
}

func (t *commitFailTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *commitFailTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *commitFailTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *commitFailTx) Commit() error {
	if t.onCommit != nil {
		t.onCommit()
	}
	return t.commitErr
}

func (t *commitFailTx) Rollback() error { return nil }

type commitFailBeginner struct {
	tx *commitFailTx
}

func (b *commitFailBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.tx, nil
}

type fakeReservationRepo struct {
	byKey       map[string]*domain.Reservation
	overlapping []*domain.Reservation
	created     []*domain.Reservation
	createErr   error
	// winnerOnCreate появляется в хранилище в момент ошибки вставки,
	// как будто конкурентная транзакция успела закоммитить этот ключ
	winnerOnCreate *domain.Reservation
	nextID         int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		byKey:  make(map[string]*domain.Reservation),
		nextID: 1,
	}
}

func (r *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if r.createErr != nil {
		if r.winnerOnCreate != nil {
			r.byKey[r.winnerOnCreate.IdempotencyKey] = r.winnerOnCreate
		}
		return nil, r.createErr
	}
	created := *res
	created.ID = r.nextID
	r.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = append(r.created, &created)
	r.byKey[created.IdempotencyKey] = &created
	return &created, nil
}

func (r *fakeReservationRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error) {
	if res, ok := r.byKey[key]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (r *fakeReservationRepo) FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	return r.overlapping, nil
}

type fakeRoomRepo struct {
	room *domain.Room
	err  error
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.room, nil
}

func activeRoom() *domain.Room {
	return &domain.Room{ID: 7, Number: "101", Type: "standard", Capacity: 2, Active: true}
}

func newTestUseCase(resRepo *fakeReservationRepo, roomRepo *fakeRoomRepo, tx *fakeTxManager, mode domain.ConfirmMode) *UseCase {
	uc := NewUseCase(resRepo, roomRepo, tx, NopInvalidator{}, NopMetrics{}, Policy{
		ConfirmMode:        mode,
		MaxStayNights:      30,
		AdvanceBookingDays: 365,
	}, fakeLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		GuestID:        42,
		RoomID:         7,
		CheckIn:        types.Date("2026-09-15"),
		CheckOut:       types.Date("2026-09-18"),
		IdempotencyKey: testIdempotencyKey,
	}
}

func TestExecute_Success(t *testing.T) {
	resRepo := newFakeReservationRepo()
	tx := &fakeTxManager{}
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, tx, domain.ConfirmModeDirect)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(0), resp.Version)
	assert.False(t, resp.Replayed)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, resRepo.created, 1)
	assert.Equal(t, types.Date("2026-09-15"), resRepo.created[0].CheckIn)
}

func TestExecute_TwoPhaseCreatesPending(t *testing.T) {
	resRepo := newFakeReservationRepo()
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeTwoPhase)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_RoomUnavailable(t *testing.T) {
	resRepo := newFakeReservationRepo()
	resRepo.overlapping = []*domain.Reservation{
		{ID: 99, RoomID: 7, CheckIn: types.Date("2026-09-14"), CheckOut: types.Date("2026-09-16"), Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Empty(t, resRepo.created)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	resRepo := newFakeReservationRepo()
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.False(t, first.Replayed)

	// Повтор с тем же ключом возвращает исходное бронирование
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, resRepo.created, 1)
}

func TestExecute_DuplicateKeyRace(t *testing.T) {
	// Конкурентный повтор выиграл вставку: ключа не было при обеих
	// предварительных проверках, Create падает с duplicate key, и
	// проигравший возвращает бронирование победителя как replay
	resRepo := newFakeReservationRepo()
	resRepo.createErr = reservationRepo.ErrDuplicateIdempotencyKey
	resRepo.winnerOnCreate = &domain.Reservation{
		ID:             5,
		RoomID:         7,
		GuestID:        42,
		CheckIn:        types.Date("2026-09-15"),
		CheckOut:       types.Date("2026-09-18"),
		Status:         domain.StatusConfirmed,
		IdempotencyKey: testIdempotencyKey,
	}

	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.Equal(t, int64(5), resp.ID)
}

func TestExecute_SerializationLossMapsToUnavailable(t *testing.T) {
	resRepo := newFakeReservationRepo()
	resRepo.createErr = reservationRepo.ErrSerialization
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestExecute_CommitSerializationFailureMapsToUnavailable(t *testing.T) {
	// Проигравший гонку узнает о конфликте только на COMMIT: все запросы
	// внутри транзакции прошли, но Postgres отказался коммитить (40001)
	resRepo := newFakeReservationRepo()
	tx := txmanager.NewTransactionManager(&commitFailBeginner{
		tx: &commitFailTx{commitErr: &pq.Error{Code: "40001"}},
	})

	uc := NewUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, tx, NopInvalidator{}, NopMetrics{}, Policy{
		ConfirmMode:        domain.ConfirmModeDirect,
		MaxStayNights:      30,
		AdvanceBookingDays: 365,
	}, fakeLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestExecute_CommitDuplicateKeyReturnsWinner(t *testing.T) {
	// Конкурентный повтор того же запроса закоммитился первым: наша вставка
	// прошла, но COMMIT упал на UNIQUE по ключу идемпотентности. Проигравший
	// перечитывает строку победителя и возвращает её как replay
	resRepo := newFakeReservationRepo()
	winner := &domain.Reservation{
		ID:             5,
		RoomID:         7,
		GuestID:        42,
		CheckIn:        types.Date("2026-09-15"),
		CheckOut:       types.Date("2026-09-18"),
		Status:         domain.StatusConfirmed,
		IdempotencyKey: testIdempotencyKey,
	}
	tx := txmanager.NewTransactionManager(&commitFailBeginner{
		tx: &commitFailTx{
			commitErr: &pq.Error{Code: "23505", Constraint: "reservations_idempotency_key_key"},
			onCommit: func() {
				resRepo.byKey[testIdempotencyKey] = winner
			},
		},
	})

	uc := NewUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, tx, NopInvalidator{}, NopMetrics{}, Policy{
		ConfirmMode:        domain.ConfirmModeDirect,
		MaxStayNights:      30,
		AdvanceBookingDays: 365,
	}, fakeLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.Equal(t, int64(5), resp.ID)
}

func TestExecute_RoomNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeReservationRepo(), &fakeRoomRepo{err: roomRepo.ErrRoomNotFound}, &fakeTxManager{}, domain.ConfirmModeDirect)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_RoomInactive(t *testing.T) {
	room := activeRoom()
	room.Active = false
	uc := newTestUseCase(newFakeReservationRepo(), &fakeRoomRepo{room: room}, &fakeTxManager{}, domain.ConfirmModeDirect)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "missing idempotency key",
			mutate:  func(req *Request) { req.IdempotencyKey = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "idempotency key is not a uuid",
			mutate:  func(req *Request) { req.IdempotencyKey = "not-a-uuid" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero guest id",
			mutate:  func(req *Request) { req.GuestID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "check-out before check-in",
			mutate: func(req *Request) {
				req.CheckIn = types.Date("2026-09-18")
				req.CheckOut = types.Date("2026-09-15")
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "check-in equals check-out",
			mutate: func(req *Request) {
				req.CheckOut = req.CheckIn
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "malformed date",
			mutate: func(req *Request) {
				req.CheckIn = types.Date("15.09.2026")
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "check-in in the past",
			mutate: func(req *Request) {
				req.CheckIn = types.Date("2026-08-20")
				req.CheckOut = types.Date("2026-08-25")
			},
			wantErr: ErrDateInPast,
		},
		{
			name: "stay too long",
			mutate: func(req *Request) {
				req.CheckIn = types.Date("2026-09-10")
				req.CheckOut = types.Date("2026-11-10")
			},
			wantErr: ErrStayTooLong,
		},
		{
			name: "too far in the future",
			mutate: func(req *Request) {
				req.CheckIn = types.Date("2028-09-15")
				req.CheckOut = types.Date("2028-09-18")
			},
			wantErr: ErrDateTooFarInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := newFakeReservationRepo()
			uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, resRepo.created)
		})
	}
}

func TestExecute_CheckInTodayAllowed(t *testing.T) {
	resRepo := newFakeReservationRepo()
	uc := newTestUseCase(resRepo, &fakeRoomRepo{room: activeRoom()}, &fakeTxManager{}, domain.ConfirmModeDirect)

	req := validRequest()
	req.CheckIn = types.Date("2026-09-01")
	req.CheckOut = types.Date("2026-09-03")

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
