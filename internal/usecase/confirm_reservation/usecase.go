package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	ReservationID   int64
	GuestID         int64
	ExpectedVersion int64
}

// Response модель ответа с результатом подтверждения
type Response struct {
	ReservationID int64
	Status        string
	Version       int64
}

// UseCase use case подтверждения бронирования (pending→confirmed)
// Используется только при политике two_phase; при direct бронирование
// создается сразу подтвержденным и этот шаг не нужен
type UseCase struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute подтверждает pending бронирование через compare-and-swap
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: id=%d, guest=%d, version=%d",
		req.ReservationID, req.GuestID, req.ExpectedVersion)

	if req.ReservationID <= 0 || req.GuestID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if req.ExpectedVersion < 0 {
		return nil, fmt.Errorf("%w: expectedVersion must be non-negative", ErrInvalidInput)
	}

	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ConfirmReservation: id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ConfirmReservation: repository error for id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if res.GuestID != req.GuestID {
		uc.logger.Warn("ConfirmReservation: guest=%d is not the owner of id=%d", req.GuestID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if !res.CanTransitionTo(domain.StatusConfirmed) {
		uc.logger.Warn("ConfirmReservation: id=%d has status %s, cannot confirm", req.ReservationID, res.Status)
		return nil, ErrInvalidTransition
	}

	err = uc.reservationRepo.UpdateStatusCAS(ctx, req.ReservationID,
		domain.StatusPending, domain.StatusConfirmed, req.ExpectedVersion)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrVersionConflict) {
			uc.logger.Warn("ConfirmReservation: version conflict for id=%d, expected=%d",
				req.ReservationID, req.ExpectedVersion)
			return nil, ErrVersionConflict
		}
		uc.logger.Error("ConfirmReservation: update failed for id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: update failed: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmReservation: id=%d confirmed, version=%d", req.ReservationID, req.ExpectedVersion+1)

	return &Response{
		ReservationID: req.ReservationID,
		Status:        string(domain.StatusConfirmed),
		Version:       req.ExpectedVersion + 1,
	}, nil
}
