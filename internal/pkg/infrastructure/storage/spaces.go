package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddSpace(ctx context.Context, space types.Space) error {
	if space.Tenant == "" {
		return ErrMissingTenant
	}
	if space.SpaceID == "" {
		return ErrNoID
	}

	var policy *string
	if space.Policy != nil {
		b, err := json.Marshal(space.Policy)
		if err != nil {
			return err
		}
		p := string(b)
		policy = &p
	}

	if space.CurrentState == "" {
		space.CurrentState = types.SpaceStateUnknown
	}

	args := pgx.NamedArgs{
		"space_id":          space.SpaceID,
		"tenant":            space.Tenant,
		"site_id":           nilIfEmpty(space.SiteID),
		"code":              space.Code,
		"name":              nilIfEmpty(space.Name),
		"enabled":           space.Enabled,
		"current_state":     string(space.CurrentState),
		"sensor_device_id":  nilIfEmpty(space.SensorDeviceID),
		"display_device_id": nilIfEmpty(space.DisplayDeviceID),
		"policy":            policy,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO spaces (space_id, tenant, site_id, code, name, enabled, current_state, sensor_device_id, display_device_id, policy)
		VALUES (@space_id, @tenant, @site_id, @code, @name, @enabled, @current_state, @sensor_device_id, @display_device_id, @policy)
	`, args)

	return mapPgError(err)
}

func (s *Storage) GetSpace(ctx context.Context, conditions ...ConditionFunc) (types.Space, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT space_id, tenant, site_id, code, name, enabled, current_state, sensor_state, display_state, state_changed_at, sensor_device_id, display_device_id, policy
		FROM spaces
		WHERE %s
	`, condition.Where())

	row := s.pool.QueryRow(ctx, query, condition.NamedArgs())

	space, err := scanSpace(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Space{}, ErrNoRows
		}
		return types.Space{}, err
	}

	return space, nil
}

func (s *Storage) QuerySpaces(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Space], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "code"
	}

	query := fmt.Sprintf(`
		SELECT space_id, tenant, site_id, code, name, enabled, current_state, sensor_state, display_state, state_changed_at, sensor_device_id, display_device_id, policy, count(*) OVER () AS total
		FROM spaces
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Space]{}, err
	}
	defer rows.Close()

	var total int64
	spaces := make([]types.Space, 0)

	for rows.Next() {
		space, err := scanSpace(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return types.Collection[types.Space]{}, err
		}
		spaces = append(spaces, space)
	}
	if rows.Err() != nil {
		return types.Collection[types.Space]{}, rows.Err()
	}

	return types.Collection[types.Space]{
		Data:       spaces,
		Count:      uint64(len(spaces)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}

// UpdateSpaceState applies a single serialized state transition. The
// expected previous state guards the update so that two concurrent
// writers cannot interleave a read-modify-write on the same space;
// the loser observes ErrNotUpdated.
func (s *Storage) UpdateSpaceState(ctx context.Context, spaceID string, from, to types.SpaceState, sensorState *types.SpaceState, changedAt time.Time) error {
	args := pgx.NamedArgs{
		"space_id":   spaceID,
		"from":       string(from),
		"to":         string(to),
		"changed_at": changedAt.UTC(),
	}

	setSensorState := ""
	if sensorState != nil {
		setSensorState = ", sensor_state = @sensor_state"
		args["sensor_state"] = string(*sensorState)
	}

	query := fmt.Sprintf(`
		UPDATE spaces
		SET current_state = @to, state_changed_at = @changed_at, modified_on = CURRENT_TIMESTAMP %s
		WHERE space_id = @space_id AND current_state = @from
	`, setSensorState)

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

func (s *Storage) UpdateDisplayState(ctx context.Context, spaceID, displayState string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE spaces
		SET display_state = @display_state, modified_on = CURRENT_TIMESTAMP
		WHERE space_id = @space_id
	`, pgx.NamedArgs{
		"space_id":      spaceID,
		"display_state": displayState,
	})

	return err
}

// ReserveSpaceIfIdle transitions a space to reserved unless it is
// currently occupied or in maintenance. Used by the reservation
// lookahead path; a no-op outcome is not an error.
func (s *Storage) ReserveSpaceIfIdle(ctx context.Context, spaceID string, changedAt time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE spaces
		SET current_state = @reserved, state_changed_at = @changed_at, modified_on = CURRENT_TIMESTAMP
		WHERE space_id = @space_id
		  AND current_state NOT IN (@reserved, @occupied, @maintenance)
	`, pgx.NamedArgs{
		"space_id":    spaceID,
		"reserved":    string(types.SpaceStateReserved),
		"occupied":    string(types.SpaceStateOccupied),
		"maintenance": string(types.SpaceStateMaintenance),
		"changed_at":  changedAt.UTC(),
	})
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// ReleaseUncoveredSpaces reverts every reserved space that has no active
// reservation covering the given instant back to free, in one bulk
// conditional update. It is idempotent and safe to run concurrently with
// reservation creation since a new active reservation covering now makes
// the NOT EXISTS clause false.
func (s *Storage) ReleaseUncoveredSpaces(ctx context.Context, now time.Time) ([]types.Space, error) {
	rows, err := s.pool.Query(ctx, `
		UPDATE spaces s
		SET current_state = @free, state_changed_at = @now, modified_on = CURRENT_TIMESTAMP
		WHERE current_state = @reserved
		  AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.space_id = s.space_id
			  AND r.status = @active
			  AND r.start_time <= @now
			  AND r.end_time > @now
		  )
		RETURNING space_id, tenant, site_id, code, name, enabled, current_state, sensor_state, display_state, state_changed_at, sensor_device_id, display_device_id, policy
	`, pgx.NamedArgs{
		"free":     string(types.SpaceStateFree),
		"reserved": string(types.SpaceStateReserved),
		"active":   string(types.ReservationActive),
		"now":      now.UTC(),
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	released := make([]types.Space, 0)

	for rows.Next() {
		space, err := scanSpace(rows.Scan)
		if err != nil {
			return nil, err
		}
		released = append(released, space)
	}

	return released, rows.Err()
}

func scanSpace(scan func(dest ...any) error) (types.Space, error) {
	var space types.Space
	var siteID, name, sensorState, displayState, sensorDeviceID, displayDeviceID *string
	var policy []byte

	err := scan(&space.SpaceID, &space.Tenant, &siteID, &space.Code, &name, &space.Enabled,
		&space.CurrentState, &sensorState, &displayState, &space.StateChangedAt,
		&sensorDeviceID, &displayDeviceID, &policy)
	if err != nil {
		return types.Space{}, err
	}

	if siteID != nil {
		space.SiteID = *siteID
	}
	if name != nil {
		space.Name = *name
	}
	if sensorState != nil {
		space.SensorState = types.SpaceState(*sensorState)
	}
	if displayState != nil {
		space.DisplayState = *displayState
	}
	if sensorDeviceID != nil {
		space.SensorDeviceID = *sensorDeviceID
	}
	if displayDeviceID != nil {
		space.DisplayDeviceID = *displayDeviceID
	}
	if len(policy) > 0 {
		p := &types.SpacePolicy{}
		if err := json.Unmarshal(policy, p); err != nil {
			return types.Space{}, err
		}
		space.Policy = p
	}

	return space, nil
}
