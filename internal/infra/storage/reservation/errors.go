package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateIdempotencyKey возвращается при вставке с уже существующим
	// ключом идемпотентности (конкурентный повтор того же запроса)
	ErrDuplicateIdempotencyKey = errors.New("reservation.repository: duplicate idempotency key")

	// ErrVersionConflict возвращается, когда compare-and-swap по (status, version)
	// не нашел строку: версия устарела или статус уже изменился
	ErrVersionConflict = errors.New("reservation.repository: version or status conflict")

	// ErrSerialization возвращается, когда PostgreSQL прервал транзакцию
	// из-за конфликта сериализации (SQLSTATE 40001)
	ErrSerialization = errors.New("reservation.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

// PostgreSQL error codes
const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
)

// idempotencyKeyConstraint имя UNIQUE constraint на idempotency_key
// Должно совпадать со схемой (migrations/001_init.up.sql)
const idempotencyKeyConstraint = "reservations_idempotency_key_key"

// ClassifyTxError переводит ошибку драйвера, всплывшую при COMMIT, в сентинелы
// репозитория. Под SERIALIZABLE PostgreSQL обнаруживает часть конфликтов (SSI)
// только в момент коммита, минуя пути выполнения запросов, где работает
// classifyPGError. Неклассифицированные ошибки возвращаются как есть
func ClassifyTxError(err error) error {
	if err == nil {
		return nil
	}
	if classified := classifyPGError(err); classified != nil {
		return fmt.Errorf("%w: %v", classified, err)
	}
	return err
}

// classifyPGError переводит ошибки драйвера в сентинелы репозитория
// Конфликт сериализации и нарушение уникальности - ожидаемые исходы гонки
// двух бронирований, вызывающий код обрабатывает их отдельно
func classifyPGError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pgSerializationFailure:
		return ErrSerialization
	case pgUniqueViolation:
		if pqErr.Constraint == idempotencyKeyConstraint {
			return ErrDuplicateIdempotencyKey
		}
		return ErrSerialization
	default:
		return nil
	}
}
