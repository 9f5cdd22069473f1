package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
)

// UseCase use case отмены бронирования
// Отмена - compare-and-swap по (status, version): конкурентное изменение
// обнаруживается без удержания блокировок между запросами
type UseCase struct {
	reservationRepo ReservationRepository
	invalidator     AvailabilityInvalidator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	invalidator AvailabilityInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		invalidator:     invalidator,
		logger:          logger,
	}
}

// Execute отменяет бронирование
// Терминальные статусы (cancelled, completed) отклоняются с ErrCannotCancel,
// несовпадение версии - с ErrVersionConflict; в обоих случаях мутации нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: id=%d, guest=%d, version=%d",
		req.ReservationID, req.GuestID, req.ExpectedVersion)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// Читаем текущее состояние для проверки владельца и статуса
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: repository error for id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if res.GuestID != req.GuestID {
		uc.logger.Warn("CancelReservation: guest=%d is not the owner of id=%d", req.GuestID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if !res.CanBeCancelled() {
		uc.logger.Warn("CancelReservation: id=%d in terminal status %s", req.ReservationID, res.Status)
		return nil, ErrCannotCancel
	}

	// CAS: статус активный и версия совпала, иначе 0 строк
	err = uc.reservationRepo.CancelCAS(ctx, req.ReservationID, req.ExpectedVersion, req.Reason)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrVersionConflict) {
			uc.logger.Warn("CancelReservation: version conflict for id=%d, expected=%d",
				req.ReservationID, req.ExpectedVersion)
			return nil, ErrVersionConflict
		}
		uc.logger.Error("CancelReservation: cancel failed for id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: cancel failed: %v", ErrInternal, err)
	}

	// Освобожденный интервал убираем из кэша (best effort)
	if err := uc.invalidator.Invalidate(ctx, res.RoomID); err != nil {
		uc.logger.Warn("CancelReservation: cache invalidation failed for room=%d: %v", res.RoomID, err)
	}

	uc.logger.Info("CancelReservation: id=%d cancelled, version=%d", req.ReservationID, req.ExpectedVersion+1)

	return &Response{
		ReservationID: req.ReservationID,
		Status:        string(domain.StatusCancelled),
		Version:       req.ExpectedVersion + 1,
	}, nil
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
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
