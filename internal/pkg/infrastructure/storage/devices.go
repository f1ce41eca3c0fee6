package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddDevice(ctx context.Context, device types.Device) error {
	if device.Tenant == "" {
		return ErrMissingTenant
	}
	if device.DeviceID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"device_id": device.DeviceID,
		"dev_eui":   strings.ToUpper(device.DevEUI),
		"kind":      device.Kind,
		"status":    device.Status,
		"tenant":    device.Tenant,
		"space_id":  nilIfEmpty(device.SpaceID),
		"last_fcnt": device.LastFCnt,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO devices (device_id, dev_eui, kind, status, tenant, space_id, last_fcnt)
		VALUES (@device_id, @dev_eui, @kind, @status, @tenant, @space_id, @last_fcnt)
	`, args)

	return mapPgError(err)
}

func (s *Storage) GetDevice(ctx context.Context, conditions ...ConditionFunc) (types.Device, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, dev_eui, kind, status, tenant, space_id, last_seen, last_fcnt
		FROM devices
		WHERE %s
	`, condition.Where())

	var device types.Device
	var spaceID *string
	var lastSeen *time.Time

	err := s.pool.QueryRow(ctx, query, condition.NamedArgs()).
		Scan(&device.DeviceID, &device.DevEUI, &device.Kind, &device.Status, &device.Tenant, &spaceID, &lastSeen, &device.LastFCnt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Device{}, ErrNoRows
		}
		return types.Device{}, err
	}

	if spaceID != nil {
		device.SpaceID = *spaceID
	}
	if lastSeen != nil {
		device.LastSeen = *lastSeen
	}

	return device, nil
}

func (s *Storage) QueryDevices(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Device], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "device_id"
	}

	query := fmt.Sprintf(`
		SELECT device_id, dev_eui, kind, status, tenant, space_id, last_seen, last_fcnt, count(*) OVER () AS total
		FROM devices
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	var device types.Device
	var spaceID *string
	var lastSeen *time.Time
	var total int64

	devices := make([]types.Device, 0)

	_, err = pgx.ForEachRow(rows, []any{&device.DeviceID, &device.DevEUI, &device.Kind, &device.Status, &device.Tenant, &spaceID, &lastSeen, &device.LastFCnt, &total}, func() error {
		d := device
		if spaceID != nil {
			d.SpaceID = *spaceID
		}
		if lastSeen != nil {
			d.LastSeen = *lastSeen
		}
		devices = append(devices, d)
		return nil
	})
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	return types.Collection[types.Device]{
		Data:       devices,
		Count:      uint64(len(devices)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}

// UpdateDeviceSeen advances a device's last seen timestamp and accepted
// sequence counter. The conditional guard keeps the counter strictly
// increasing even if two messages for the same device race.
func (s *Storage) UpdateDeviceSeen(ctx context.Context, deviceID string, fcnt int64, seenAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET last_seen = @last_seen, last_fcnt = @last_fcnt, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id AND last_fcnt < @last_fcnt
	`, pgx.NamedArgs{
		"device_id": deviceID,
		"last_fcnt": fcnt,
		"last_seen": seenAt.UTC(),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

// ActivateDevice flips a provisioned device to active on its first
// accepted uplink.
func (s *Storage) ActivateDevice(ctx context.Context, deviceID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET status = @active, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id AND status = @provisioned
	`, pgx.NamedArgs{
		"device_id":   deviceID,
		"active":      types.DeviceStatusActive,
		"provisioned": types.DeviceStatusProvisioned,
	})
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// DeactivateUnseenDevices marks active devices that have been silent for
// longer than unseenFor as inactive. Devices that never reported stay in
// their provisioned state.
func (s *Storage) DeactivateUnseenDevices(ctx context.Context, unseenFor time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET status = @inactive, modified_on = CURRENT_TIMESTAMP
		WHERE status = @active AND last_seen IS NOT NULL AND last_seen < @deadline
	`, pgx.NamedArgs{
		"inactive": types.DeviceStatusInactive,
		"active":   types.DeviceStatusActive,
		"deadline": time.Now().UTC().Add(-unseenFor),
	})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (s *Storage) GetTenants(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT tenant FROM devices
	`)
	if err != nil {
		return nil, err
	}

	var tenant string
	tenants := make([]string, 0)

	_, err = pgx.ForEachRow(rows, []any{&tenant}, func() error {
		tenants = append(tenants, tenant)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
