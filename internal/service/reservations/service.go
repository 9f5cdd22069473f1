package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
)

// Service сервис чтения бронирований и служебных переходов статуса
// Путь создания и переноса бронирований живет в usecase слое, здесь только
// операции без проверки доступности
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Гость видит только свое бронирование
func (s *Service) GetByID(ctx context.Context, id int64, guestID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for guest=%d", id, guestID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.GuestID != guestID {
		s.logger.Warn("GetByID: access denied for guest=%d to reservation id=%d", guestID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetGuestReservations получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestReservations(ctx context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetGuestReservations: fetching reservations for guest=%d, status=%v", req.GuestID, req.Status)

	if req.GuestID <= 0 {
		return nil, fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestReservations: invalid status=%s for guest=%d", *req.Status, req.GuestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		domainStatus = &status
	}

	list, err := s.reservationRepo.GetByGuest(ctx, domain.GuestReservationsFilter{
		GuestID: req.GuestID,
		Status:  domainStatus,
	})
	if err != nil {
		s.logger.Error("GetGuestReservations: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestReservations: fetched %d reservations for guest=%d", len(list), req.GuestID)
	return models.FromDomainReservationList(list), nil
}

// Complete переводит подтвержденное бронирование в completed после выезда
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompleteReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%d by guest=%d, version=%d", id, req.GuestID, req.ExpectedVersion)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Complete: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if res.GuestID != req.GuestID {
		s.logger.Warn("Complete: access denied for guest=%d to reservation id=%d", req.GuestID, id)
		return nil, ErrAccessDenied
	}

	if !res.CanTransitionTo(domain.StatusCompleted) {
		s.logger.Warn("Complete: reservation id=%d has status %s, cannot complete", id, res.Status)
		return nil, ErrInvalidTransition
	}

	err = s.reservationRepo.UpdateStatusCAS(ctx, id, domain.StatusConfirmed, domain.StatusCompleted, req.ExpectedVersion)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrVersionConflict) {
			s.logger.Warn("Complete: version conflict for reservation id=%d, expected=%d", id, req.ExpectedVersion)
			return nil, ErrVersionConflict
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	res.Status = domain.StatusCompleted
	res.Version = req.ExpectedVersion + 1

	s.logger.Info("Complete: reservation id=%d completed, version=%d", id, res.Version)
	return models.FromDomainReservation(res), nil
}

// Snapshot собирает read-only срез подтвержденных бронирований за период
// вместе со списком номеров. Выполняется в read-only транзакции, чтобы
// оба списка описывали одно состояние БД
func (s *Service) Snapshot(ctx context.Context, req *models.SnapshotRequest) (*models.SnapshotResponse, error) {
	s.logger.Info("Snapshot: building snapshot for period [%s, %s)", req.From, req.To)

	rng, err := domain.NewDateRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("Snapshot: invalid period: %v", err)
		return nil, fmt.Errorf("%w: invalid period: %v", ErrInvalidInput, err)
	}

	var (
		rooms        []*domain.Room
		reservations []*domain.Reservation
	)

	txErr := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		rooms, err = s.roomRepo.List(txCtx, false)
		if err != nil {
			return fmt.Errorf("failed to list rooms: %w", err)
		}

		reservations, err = s.reservationRepo.ListConfirmedBetween(txCtx, rng)
		if err != nil {
			return fmt.Errorf("failed to list reservations: %w", err)
		}

		return nil
	})
	if txErr != nil {
		s.logger.Error("Snapshot: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: Snapshot - %v", ErrInternal, txErr)
	}

	resp := &models.SnapshotResponse{
		From:         string(rng.CheckIn),
		To:           string(rng.CheckOut),
		GeneratedAt:  time.Now().UTC(),
		Rooms:        make([]models.SnapshotRoom, 0, len(rooms)),
		Reservations: models.FromDomainReservationList(reservations).Reservations,
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, models.FromDomainRoom(room))
	}

	s.logger.Info("Snapshot: built snapshot with %d rooms and %d reservations", len(resp.Rooms), len(resp.Reservations))
	return resp, nil
}
