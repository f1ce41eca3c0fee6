package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/jackc/pgx/v5"
)

// AddReservation inserts a new reservation row. Overlap among active
// reservations is enforced by the exclusion constraint on
// (space_id, tstzrange(start_time, end_time)); a violation surfaces as
// ErrConflict. A replayed idempotency key trips the partial unique index
// and surfaces as ErrAlreadyExists.
func (s *Storage) AddReservation(ctx context.Context, r types.Reservation) error {
	if r.Tenant == "" {
		return ErrMissingTenant
	}
	if r.ReservationID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"reservation_id":  r.ReservationID,
		"tenant":          r.Tenant,
		"space_id":        r.SpaceID,
		"start_time":      r.StartTime.UTC(),
		"end_time":        r.EndTime.UTC(),
		"status":          string(r.Status),
		"idempotency_key": nilIfEmpty(r.IdempotencyKey),
		"checked_in":      r.CheckedIn,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO reservations (reservation_id, tenant, space_id, start_time, end_time, status, idempotency_key, checked_in)
		VALUES (@reservation_id, @tenant, @space_id, @start_time, @end_time, @status, @idempotency_key, @checked_in)
	`, args)

	return mapPgError(err)
}

func (s *Storage) GetReservation(ctx context.Context, conditions ...ConditionFunc) (types.Reservation, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT reservation_id, tenant, space_id, start_time, end_time, status, idempotency_key, checked_in, cancelled_at, cancel_reason, created_on
		FROM reservations
		WHERE %s
	`, condition.Where())

	row := s.pool.QueryRow(ctx, query, condition.NamedArgs())

	r, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Reservation{}, ErrNoRows
		}
		return types.Reservation{}, err
	}

	return r, nil
}

func (s *Storage) QueryReservations(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Reservation], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "start_time"
		condition.sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT reservation_id, tenant, space_id, start_time, end_time, status, idempotency_key, checked_in, cancelled_at, cancel_reason, created_on, count(*) OVER () AS total
		FROM reservations
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Reservation]{}, err
	}
	defer rows.Close()

	var total int64
	reservations := make([]types.Reservation, 0)

	for rows.Next() {
		r, err := scanReservation(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return types.Collection[types.Reservation]{}, err
		}
		reservations = append(reservations, r)
	}
	if rows.Err() != nil {
		return types.Collection[types.Reservation]{}, rows.Err()
	}

	return types.Collection[types.Reservation]{
		Data:       reservations,
		Count:      uint64(len(reservations)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}

// CancelReservation transitions an active reservation to cancelled.
// The status guard makes the transition valid only from active, so a
// concurrent cancel or expire loses cleanly with ErrNotUpdated.
func (s *Storage) CancelReservation(ctx context.Context, reservationID, reason string, cancelledAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reservations
		SET status = @cancelled, cancelled_at = @cancelled_at, cancel_reason = @reason, modified_on = CURRENT_TIMESTAMP
		WHERE reservation_id = @reservation_id AND status = @active
	`, pgx.NamedArgs{
		"reservation_id": reservationID,
		"cancelled":      string(types.ReservationStatusCancelled),
		"active":         string(types.ReservationActive),
		"cancelled_at":   cancelledAt.UTC(),
		"reason":         nilIfEmpty(reason),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

// ExpireReservations transitions every active reservation that ended
// before now and was never checked in to expired, in one bulk
// conditional update. Repeat invocations are no-ops.
func (s *Storage) ExpireReservations(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reservations
		SET status = @expired, modified_on = CURRENT_TIMESTAMP
		WHERE status = @active
		  AND end_time < @now
		  AND checked_in = FALSE
	`, pgx.NamedArgs{
		"expired": string(types.ReservationExpired),
		"active":  string(types.ReservationActive),
		"now":     now.UTC(),
	})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// HasUpcomingReservation reports whether an active reservation for the
// space covers now or starts within the lookahead window.
func (s *Storage) HasUpcomingReservation(ctx context.Context, spaceID string, now time.Time, lookahead time.Duration) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE space_id = @space_id
			  AND status = @active
			  AND start_time < @horizon
			  AND end_time > @now
		)
	`, pgx.NamedArgs{
		"space_id": spaceID,
		"active":   string(types.ReservationActive),
		"now":      now.UTC(),
		"horizon":  now.Add(lookahead).UTC(),
	}).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func scanReservation(scan func(dest ...any) error) (types.Reservation, error) {
	var r types.Reservation
	var idempotencyKey, cancelReason *string
	var cancelledAt *time.Time

	err := scan(&r.ReservationID, &r.Tenant, &r.SpaceID, &r.StartTime, &r.EndTime, &r.Status,
		&idempotencyKey, &r.CheckedIn, &cancelledAt, &cancelReason, &r.CreatedAt)
	if err != nil {
		return types.Reservation{}, err
	}

	if idempotencyKey != nil {
		r.IdempotencyKey = *idempotencyKey
	}
	if cancelReason != nil {
		r.CancelReason = *cancelReason
	}
	r.CancelledAt = cancelledAt

	return r, nil
}
