package availability

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// Nop заглушка кэша, когда Redis выключен в конфигурации
// Чтение всегда промахивается, запись и инвалидация ничего не делают
type Nop struct{}

// GetRanges всегда возвращает промах
func (Nop) GetRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error) {
	return nil, ErrCacheMiss
}

// SetRanges ничего не делает
func (Nop) SetRanges(ctx context.Context, roomID int64, ranges []domain.DateRange) error {
	return nil
}

// Invalidate ничего не делает
func (Nop) Invalidate(ctx context.Context, roomID int64) error {
	return nil
}
