package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ErrCacheMiss возвращается, когда ключа нет в кэше
var ErrCacheMiss = errors.New("availability.cache: cache miss")

// Cache Redis-кэш занятых интервалов для read-only потребителей (отчеты,
// AI-ассистент). Никогда не является источником истины: любая запись в
// Ledger инвалидирует ключ, путь бронирования читает только из БД
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш доступности поверх Redis клиента
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func roomKey(roomID int64) string {
	return fmt.Sprintf("availability:room:%d", roomID)
}

// GetRanges возвращает закэшированные занятые интервалы номера
func (c *Cache) GetRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error) {
	data, err := c.client.Get(ctx, roomKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("availability.cache: get room %d: %w", roomID, err)
	}

	var ranges []domain.DateRange
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, fmt.Errorf("availability.cache: decode room %d: %w", roomID, err)
	}

	return ranges, nil
}

// SetRanges кладет занятые интервалы номера в кэш с TTL
func (c *Cache) SetRanges(ctx context.Context, roomID int64, ranges []domain.DateRange) error {
	data, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("availability.cache: encode room %d: %w", roomID, err)
	}

	if err := c.client.Set(ctx, roomKey(roomID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability.cache: set room %d: %w", roomID, err)
	}

	return nil
}

// Invalidate удаляет кэш номера после успешной записи в Ledger
// Вызывается после коммита; ошибка не влияет на результат бронирования,
// устаревший ключ в худшем случае доживет до истечения TTL
func (c *Cache) Invalidate(ctx context.Context, roomID int64) error {
	if err := c.client.Del(ctx, roomKey(roomID)).Err(); err != nil {
		return fmt.Errorf("availability.cache: invalidate room %d: %w", roomID, err)
	}
	return nil
}
