package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/codehunter/hotelbooking/internal/domain"
	"github.com/codehunter/hotelbooking/pkg/dbmetrics"
	"github.com/codehunter/hotelbooking/pkg/psqlbuilder"
)

// reservationColumns колонки таблицы reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"room_id",
	"guest_id",
	"check_in",
	"check_out",
	"status",
	"idempotency_key",
	"version",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (Reservation Ledger)
// Единственный владелец жизненного цикла бронирований: все мутации идут
// через него и являются транзакционными
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом из booking policy и version = 0
// Обязан вызываться внутри сериализуемой транзакции вместе с проверкой
// пересечений: UNIQUE constraint на idempotency_key и конфликт сериализации -
// последняя линия защиты от гонки двух конкурентных вставок
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"guest_id",
			"check_in",
			"check_out",
			"status",
			"idempotency_key",
			"version",
			"notes",
		).
		Values(
			res.RoomID,
			res.GuestID,
			res.CheckIn,
			res.CheckOut,
			res.Status,
			res.IdempotencyKey,
			res.Version,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if classified := classifyPGError(err); classified != nil {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: CAS-обновления после чтения
	// не должны гоняться с параллельной отменой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIdempotencyKey ищет бронирование по ключу идемпотентности
// Повторная отправка запроса с тем же ключом получает исходный результат
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByIdempotencyKey")
}

// FindOverlapping ищет активные бронирования, пересекающиеся с интервалом
// Полуоткрытые интервалы: пересечение есть при check_in < rangeEnd AND check_out > rangeStart
//
// Внутри транзакции добавляет FOR UPDATE: найденные строки блокируются до
// коммита, проверка доступности и вставка становятся атомарными
func (r *Repository) FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": filter.RoomID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"check_in": filter.Range.CheckOut}).
		Where(squirrel.Gt{"check_out": filter.Range.CheckIn}).
		OrderBy("check_in ASC")

	// При переносе дат бронирование не конфликтует само с собой
	if filter.ExcludeReservationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeReservationID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if classified := classifyPGError(err); classified != nil {
			return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// OccupiedRanges возвращает занятые интервалы номера, упорядоченные по заезду
// Только активные статусы (pending, confirmed)
func (r *Repository) OccupiedRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("check_in", "check_out").
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("check_in ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.DateRange, 0)
	for rows.Next() {
		var dr domain.DateRange
		if err := rows.Scan(&dr.CheckIn, &dr.CheckOut); err != nil {
			return nil, fmt.Errorf("%w: OccupiedRanges - scan row: %v", ErrScanRow, err)
		}
		ranges = append(ranges, dr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OccupiedRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// GetByGuest получает бронирования гостя, опционально фильтруя по статусу
// Сортировка: сначала ближайшие заезды
func (r *Repository) GetByGuest(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"guest_id": filter.GuestID}).
		OrderBy("check_in DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuest - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuest - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListConfirmedBetween возвращает подтвержденные бронирования, пересекающиеся
// с периодом [from, to) - read-only источник для отчетного снапшота
func (r *Repository) ListConfirmedBetween(ctx context.Context, rng domain.DateRange) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"check_in": rng.CheckOut}).
		Where(squirrel.Gt{"check_out": rng.CheckIn}).
		OrderBy("room_id ASC, check_in ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatusCAS переводит статус через compare-and-swap по (status, version)
// Возвращает ErrVersionConflict, если текущий статус не fromStatus или версия
// не совпала - вызывающий перечитывает состояние и решает сам
func (r *Repository) UpdateStatusCAS(
	ctx context.Context,
	id int64,
	fromStatus, toStatus domain.ReservationStatus,
	expectedVersion int64,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", toStatus).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  fromStatus,
			"version": expectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "UpdateStatusCAS")
}

// CancelCAS отменяет бронирование через compare-and-swap
// Успешна только из активных статусов с совпадающей версией
func (r *Repository) CancelCAS(ctx context.Context, id int64, expectedVersion int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  statusStrings(domain.ActiveStatuses),
			"version": expectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelCAS - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "CancelCAS")
}

// UpdateDatesCAS переносит даты бронирования через compare-and-swap
// Вызывается внутри сериализуемой транзакции после проверки пересечений
func (r *Repository) UpdateDatesCAS(ctx context.Context, id int64, rng domain.DateRange, expectedVersion int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("check_in", rng.CheckIn).
		Set("check_out", rng.CheckOut).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  statusStrings(domain.ActiveStatuses),
			"version": expectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDatesCAS - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "UpdateDatesCAS")
}

// execCAS выполняет CAS-обновление: 0 затронутых строк означает конфликт
func (r *Repository) execCAS(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if classified := classifyPGError(err); classified != nil {
			return fmt.Errorf("%w: %s - execute update: %v", classified, op, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// scanOne сканирует одну строку бронирования
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.GuestID,
		&res.CheckIn,
		&res.CheckOut,
		&res.Status,
		&res.IdempotencyKey,
		&res.Version,
		&res.Notes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.RoomID,
			&res.GuestID,
			&res.CheckIn,
			&res.CheckOut,
			&res.Status,
			&res.IdempotencyKey,
			&res.Version,
			&res.Notes,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// statusStrings конвертирует статусы в строки для squirrel.Eq (IN-условие)
func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
