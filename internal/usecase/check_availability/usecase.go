package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehunter/hotelbooking/internal/domain"
	availabilityCache "github.com/codehunter/hotelbooking/internal/infra/cache/availability"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
)

// UseCase use case запросов доступности номера
//
// Читает из БД без блокировок: ответ советочный, гонку с параллельным
// бронированием разрешает только сериализуемая транзакция при записи.
// Список занятых интервалов дополнительно кэшируется для read-only
// потребителей (отчеты, AI-ассистент)
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	cache           AvailabilityCache
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute проверяет, свободен ли номер на интервале [checkIn, checkOut)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	rng, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid range for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	if err := uc.ensureRoomExists(ctx, req.RoomID); err != nil {
		return nil, err
	}

	overlapping, err := uc.reservationRepo.FindOverlapping(ctx, domain.OverlapFilter{
		RoomID: req.RoomID,
		Range:  rng,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: overlap query failed for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to find overlapping reservations: %v", ErrInternal, err)
	}

	return &Response{
		RoomID:    req.RoomID,
		CheckIn:   rng.CheckIn,
		CheckOut:  rng.CheckOut,
		Available: len(overlapping) == 0,
	}, nil
}

// OccupiedRanges возвращает занятые интервалы номера, отсортированные по
// дате заезда. Сначала кэш, при промахе БД с последующим заполнением кэша
func (uc *UseCase) OccupiedRanges(ctx context.Context, roomID int64) (*OccupiedRangesResponse, error) {
	if roomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if err := uc.ensureRoomExists(ctx, roomID); err != nil {
		return nil, err
	}

	if cached, err := uc.cache.GetRanges(ctx, roomID); err == nil {
		return toOccupiedResponse(roomID, cached), nil
	} else if !errors.Is(err, availabilityCache.ErrCacheMiss) {
		// Недоступный кэш не ломает запрос, идем в БД
		uc.logger.Warn("CheckAvailability: cache read failed for room=%d: %v", roomID, err)
	}

	ranges, err := uc.reservationRepo.OccupiedRanges(ctx, roomID)
	if err != nil {
		uc.logger.Error("CheckAvailability: occupied ranges query failed for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to load occupied ranges: %v", ErrInternal, err)
	}

	if err := uc.cache.SetRanges(ctx, roomID, ranges); err != nil {
		uc.logger.Warn("CheckAvailability: cache write failed for room=%d: %v", roomID, err)
	}

	return toOccupiedResponse(roomID, ranges), nil
}

func (uc *UseCase) ensureRoomExists(ctx context.Context, roomID int64) error {
	_, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room=%d not found", roomID)
			return ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: room lookup failed for room=%d: %v", roomID, err)
		return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	return nil
}

func toOccupiedResponse(roomID int64, ranges []domain.DateRange) *OccupiedRangesResponse {
	out := make([]OccupiedRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, OccupiedRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut})
	}
	return &OccupiedRangesResponse{RoomID: roomID, Ranges: out}
}
