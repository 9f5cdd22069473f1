package modify_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	"github.com/codehunter/hotelbooking/pkg/ptr"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// Policy политика бронирования из конфигурации
type Policy struct {
	MaxStayNights int
}

// UseCase use case переноса дат бронирования
// Логически это cancel-then-rebook в одной сериализуемой транзакции:
// проверка новых дат против всех остальных бронирований номера и замена
// интервала атомарны; при любой ошибке исходное бронирование нетронуто
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	invalidator     AvailabilityInvalidator
	policy          Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	invalidator AvailabilityInvalidator,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит даты бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyReservation: id=%d, guest=%d, newRange=[%s, %s), version=%d",
		req.ReservationID, req.GuestID, req.NewCheckIn, req.NewCheckOut, req.ExpectedVersion)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyReservation: validation failed: %v", err)
		return nil, err
	}

	newRange, err := domain.NewDateRange(req.NewCheckIn, req.NewCheckOut)
	if err != nil {
		uc.logger.Warn("ModifyReservation: invalid new range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	if err := uc.validatePolicy(newRange); err != nil {
		uc.logger.Warn("ModifyReservation: policy validation failed: %v", err)
		return nil, err
	}

	var result *Response

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем с блокировкой строки (FOR UPDATE внутри транзакции)
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if res.GuestID != req.GuestID {
			return ErrAccessDenied
		}

		if !res.CanBeModified() {
			return ErrCannotModify
		}

		if res.Version != req.ExpectedVersion {
			return ErrVersionConflict
		}

		// Новые даты проверяются против всех ОСТАЛЬНЫХ бронирований номера:
		// бронирование не конфликтует само с собой
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, domain.OverlapFilter{
			RoomID:               res.RoomID,
			Range:                newRange,
			ExcludeReservationID: ptr.Ptr(res.ID),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to find overlapping reservations: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("ModifyReservation: new range for id=%d conflicts with %d reservation(s)",
				req.ReservationID, len(overlapping))
			return ErrRoomUnavailable
		}

		if err := uc.reservationRepo.UpdateDatesCAS(txCtx, res.ID, newRange, req.ExpectedVersion); err != nil {
			if errors.Is(err, reservationRepo.ErrVersionConflict) {
				return ErrVersionConflict
			}
			return fmt.Errorf("%w: update failed: %v", ErrInternal, err)
		}

		result = fromDomain(res, newRange, uc.timeProvider.Now())
		return nil
	})

	if txErr != nil {
		// Конфликт сериализации может всплыть и на COMMIT (SSI), минуя
		// классификацию в репозитории
		txErr = reservationRepo.ClassifyTxError(txErr)

		if errors.Is(txErr, reservationRepo.ErrSerialization) {
			uc.logger.Warn("ModifyReservation: lost serialization race for id=%d: %v", req.ReservationID, txErr)
			return nil, ErrRoomUnavailable
		}
		if isExpected(txErr) {
			return nil, txErr
		}
		uc.logger.Error("ModifyReservation: transaction failed: %v", txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	// Перенос меняет занятые интервалы - кэш устарел
	if err := uc.invalidator.Invalidate(ctx, result.RoomID); err != nil {
		uc.logger.Warn("ModifyReservation: cache invalidation failed for room=%d: %v", result.RoomID, err)
	}

	uc.logger.Info("ModifyReservation: id=%d moved to [%s, %s), version=%d",
		result.ID, result.CheckIn, result.CheckOut, result.Version)

	return result, nil
}

func (uc *UseCase) validatePolicy(rng domain.DateRange) error {
	today := types.NewDate(uc.timeProvider.Now())

	if rng.CheckIn.Before(today) {
		return ErrDateInPast
	}

	nights, err := rng.Nights()
	if err != nil {
		return fmt.Errorf("%w: failed to calculate nights: %v", ErrInternal, err)
	}

	if nights > uc.policy.MaxStayNights {
		return fmt.Errorf("%w: stay of %d nights exceeds limit of %d",
			ErrStayTooLong, nights, uc.policy.MaxStayNights)
	}

	return nil
}

func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}
	if req.ExpectedVersion < 0 {
		return fmt.Errorf("%w: expectedVersion must be non-negative", ErrInvalidInput)
	}
	if req.NewCheckIn.IsZero() || req.NewCheckOut.IsZero() {
		return fmt.Errorf("%w: new dates are required", ErrInvalidInput)
	}
	return nil
}

// isExpected проверяет, что ошибка - ожидаемый исход, а не сбой
func isExpected(err error) bool {
	return errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrCannotModify) ||
		errors.Is(err, ErrVersionConflict) ||
		errors.Is(err, ErrRoomUnavailable)
}
