package book_room

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
)

// Policy политика бронирования из конфигурации
type Policy struct {
	ConfirmMode        domain.ConfirmMode
	MaxStayNights      int
	AdvanceBookingDays int
}

// UseCase use case бронирования номера (Booking Orchestrator)
// Владеет контрактом конкурентности и идемпотентности: проверка доступности
// и вставка выполняются в одной сериализуемой транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	invalidator     AvailabilityInvalidator
	metrics         MetricsRecorder
	policy          Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	invalidator AvailabilityInvalidator,
	metrics MetricsRecorder,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		metrics:         metrics,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет попытку бронирования
//
// Гарантии:
//   - два конкурентных запроса на пересекающиеся даты: ровно один получает
//     бронирование, второй - ErrRoomUnavailable после коммита победителя
//   - повтор с тем же idempotencyKey возвращает исходное бронирование,
//     вторая строка не создается
//   - конфликт транзакций не ретраится автоматически: вызывающий повторяет
//     запрос сам с тем же ключом идемпотентности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookRoom: guest=%d, room=%d, range=[%s, %s), key=%s",
		req.GuestID, req.RoomID, req.CheckIn, req.CheckOut, req.IdempotencyKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookRoom: validation failed: %v", err)
		return nil, err
	}

	// 2. Идемпотентный повтор: ключ уже известен - возвращаем исходный
	// результат без повторной валидации доступности
	if existing, err := uc.reservationRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		uc.logger.Info("BookRoom: idempotent replay, key=%s -> reservation id=%d",
			req.IdempotencyKey, existing.ID)
		uc.metrics.ObserveReservationOutcome("replayed")
		return fromDomain(existing, true), nil
	} else if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
		uc.logger.Error("BookRoom: idempotency lookup failed: %v", err)
		return nil, fmt.Errorf("%w: idempotency lookup: %v", ErrInternal, err)
	}

	// 3. Валидация интервала и политики
	rng, err := validateRange(req)
	if err != nil {
		uc.logger.Warn("BookRoom: date range validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validatePolicy(rng, now, uc.policy.MaxStayNights, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("BookRoom: policy validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation
	replayed := false

	// 4. Проверка доступности и вставка в одной сериализуемой транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Повторная проверка ключа внутри транзакции: два повтора
		// одного запроса могли пройти проверку выше одновременно
		if existing, err := uc.reservationRepo.GetByIdempotencyKey(txCtx, req.IdempotencyKey); err == nil {
			result = existing
			replayed = true
			return nil
		} else if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return fmt.Errorf("%w: idempotency lookup in tx: %v", ErrInternal, err)
		}

		// 4.2. Номер существует и принимает бронирования
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !room.IsBookable() {
			return ErrRoomInactive
		}

		// 4.3. Поиск пересечений с блокировкой найденных строк (FOR UPDATE)
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, domain.OverlapFilter{
			RoomID: req.RoomID,
			Range:  rng,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to find overlapping reservations: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("BookRoom: room=%d unavailable, %d overlapping reservation(s), first id=%d",
				req.RoomID, len(overlapping), overlapping[0].ID)
			return ErrRoomUnavailable
		}

		// 4.4. Вставка бронирования со статусом из политики, version 0
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RoomID:         req.RoomID,
			GuestID:        req.GuestID,
			CheckIn:        rng.CheckIn,
			CheckOut:       rng.CheckOut,
			Status:         uc.policy.ConfirmMode.InitialStatus(),
			IdempotencyKey: req.IdempotencyKey,
			Version:        0,
			Notes:          req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if txErr != nil {
		return uc.mapTxError(ctx, req, txErr)
	}

	if replayed {
		uc.logger.Info("BookRoom: idempotent replay in tx, key=%s -> reservation id=%d",
			req.IdempotencyKey, result.ID)
		uc.metrics.ObserveReservationOutcome("replayed")
		return fromDomain(result, true), nil
	}

	// 5. Инвалидация кэша доступности после коммита (best effort)
	if err := uc.invalidator.Invalidate(ctx, req.RoomID); err != nil {
		uc.logger.Warn("BookRoom: cache invalidation failed for room=%d: %v", req.RoomID, err)
	}

	uc.logger.Info("BookRoom: created reservation id=%d, status=%s", result.ID, result.Status)
	uc.metrics.ObserveReservationOutcome(string(result.Status))

	return fromDomain(result, false), nil
}

// mapTxError переводит ошибки транзакции в результат для вызывающего
//
// Конфликт сериализации означает, что параллельная транзакция успела
// закоммитить пересекающееся бронирование: для вызывающего это RoomUnavailable,
// автоматический ретрай запрещен (повтор с тем же ключом безопасен)
func (uc *UseCase) mapTxError(ctx context.Context, req *Request, txErr error) (*Response, error) {
	// Конфликт может всплыть и на COMMIT (SSI), минуя классификацию в
	// репозитории: переводим SQLSTATE в сентинелы перед разбором
	txErr = reservationRepo.ClassifyTxError(txErr)

	switch {
	case errors.Is(txErr, reservationRepo.ErrSerialization):
		uc.logger.Warn("BookRoom: lost serialization race for room=%d: %v", req.RoomID, txErr)
		uc.metrics.ObserveReservationOutcome("unavailable")
		return nil, ErrRoomUnavailable

	case errors.Is(txErr, reservationRepo.ErrDuplicateIdempotencyKey):
		// Конкурентный повтор того же запроса выиграл вставку - возвращаем
		// его результат как идемпотентный повтор
		existing, err := uc.reservationRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			uc.logger.Error("BookRoom: winner lookup after duplicate key failed: %v", err)
			return nil, fmt.Errorf("%w: winner lookup: %v", ErrInternal, err)
		}
		uc.metrics.ObserveReservationOutcome("replayed")
		return fromDomain(existing, true), nil

	case errors.Is(txErr, ErrRoomUnavailable):
		uc.metrics.ObserveReservationOutcome("unavailable")
		return nil, txErr

	case errors.Is(txErr, ErrRoomNotFound),
		errors.Is(txErr, ErrRoomInactive):
		return nil, txErr

	default:
		uc.logger.Error("BookRoom: transaction failed: %v", txErr)
		uc.metrics.ObserveReservationOutcome("error")
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}
}
