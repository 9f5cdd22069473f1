package check_availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehunter/hotelbooking/internal/domain"
	availabilityCache "github.com/codehunter/hotelbooking/internal/infra/cache/availability"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
	"github.com/codehunter/hotelbooking/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(format string, v ...interface{})  {}
func (fakeLogger) Warn(format string, v ...interface{})  {}
func (fakeLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	overlapping   []*domain.Reservation
	ranges        []domain.DateRange
	rangesQueries int
}

func (r *fakeReservationRepo) FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	return r.overlapping, nil
}

func (r *fakeReservationRepo) OccupiedRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error) {
	r.rangesQueries++
	return r.ranges, nil
}

type fakeRoomRepo struct {
	err error
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Room{ID: id, Number: "101", Active: true}, nil
}

type fakeCache struct {
	ranges   []domain.DateRange
	hasValue bool
	setCalls int
}

func (c *fakeCache) GetRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error) {
	if !c.hasValue {
		return nil, availabilityCache.ErrCacheMiss
	}
	return c.ranges, nil
}

func (c *fakeCache) SetRanges(ctx context.Context, roomID int64, ranges []domain.DateRange) error {
	c.ranges = ranges
	c.hasValue = true
	c.setCalls++
	return nil
}

func validRequest() *Request {
	return &Request{
		RoomID:   7,
		CheckIn:  types.Date("2026-09-15"),
		CheckOut: types.Date("2026-09-18"),
	}
}

func TestExecute_Available(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeRoomRepo{}, &fakeCache{}, fakeLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, int64(7), resp.RoomID)
}

func TestExecute_Unavailable(t *testing.T) {
	repo := &fakeReservationRepo{
		overlapping: []*domain.Reservation{
			{ID: 99, RoomID: 7, CheckIn: types.Date("2026-09-10"), CheckOut: types.Date("2026-09-16")},
		},
	}
	uc := NewUseCase(repo, &fakeRoomRepo{}, &fakeCache{}, fakeLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
}

func TestExecute_RoomNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeRoomRepo{err: roomRepo.ErrRoomNotFound}, &fakeCache{}, fakeLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeRoomRepo{}, &fakeCache{}, fakeLogger{})

	req := validRequest()
	req.CheckIn = types.Date("2026-09-18")
	req.CheckOut = types.Date("2026-09-15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestOccupiedRanges_CacheMissThenHit(t *testing.T) {
	repo := &fakeReservationRepo{
		ranges: []domain.DateRange{
			{CheckIn: types.Date("2026-09-10"), CheckOut: types.Date("2026-09-12")},
			{CheckIn: types.Date("2026-09-15"), CheckOut: types.Date("2026-09-18")},
		},
	}
	cache := &fakeCache{}
	uc := NewUseCase(repo, &fakeRoomRepo{}, cache, fakeLogger{})

	// Первый запрос: промах кэша, чтение из БД и заполнение кэша
	first, err := uc.OccupiedRanges(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, first.Ranges, 2)
	assert.Equal(t, 1, repo.rangesQueries)
	assert.Equal(t, 1, cache.setCalls)

	// Второй запрос обслуживается из кэша, БД не трогается
	second, err := uc.OccupiedRanges(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first.Ranges, second.Ranges)
	assert.Equal(t, 1, repo.rangesQueries)
}

func TestOccupiedRanges_NopCacheAlwaysGoesToDB(t *testing.T) {
	repo := &fakeReservationRepo{
		ranges: []domain.DateRange{
			{CheckIn: types.Date("2026-09-10"), CheckOut: types.Date("2026-09-12")},
		},
	}
	uc := NewUseCase(repo, &fakeRoomRepo{}, availabilityCache.Nop{}, fakeLogger{})

	_, err := uc.OccupiedRanges(context.Background(), 7)
	require.NoError(t, err)
	_, err = uc.OccupiedRanges(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.rangesQueries)
}
