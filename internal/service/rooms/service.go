package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codehunter/hotelbooking/internal/domain"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
	"github.com/codehunter/hotelbooking/internal/service/rooms/models"
)

// Service сервис управления инвентарем номеров
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса номеров
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Create создает новый номер
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room number=%s, type=%s", req.Number, req.Type)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	room, err := s.roomRepo.Create(ctx, &domain.Room{
		Number:   strings.TrimSpace(req.Number),
		Type:     strings.TrimSpace(req.Type),
		Capacity: req.Capacity,
		Active:   true,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateNumber) {
			s.logger.Warn("Create: room number=%s already exists", req.Number)
			return nil, ErrDuplicateNumber
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created room id=%d, number=%s", room.ID, room.Number)
	return models.FromDomainRoom(room), nil
}

// GetByID получает номер по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRoom(room), nil
}

// List возвращает список номеров, опционально только активных
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.RoomListResponse, error) {
	list, err := s.roomRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRoomList(list), nil
}

// SetActive включает или выключает номер из инвентаря
// Выключенный номер не принимает новые бронирования, существующие не трогаются
func (s *Service) SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) error {
	s.logger.Info("SetActive: room id=%d -> active=%t", id, req.Active)

	if err := s.roomRepo.SetActive(ctx, id, req.Active); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("SetActive: room id=%d not found", id)
			return ErrRoomNotFound
		}
		s.logger.Error("SetActive: repository error for room id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateCreateRequest(req *models.CreateRoomRequest) error {
	if strings.TrimSpace(req.Number) == "" {
		return fmt.Errorf("%w: room number is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Type) == "" {
		return fmt.Errorf("%w: room type is required", ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	return nil
}
