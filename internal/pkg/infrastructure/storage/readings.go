package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddReading(ctx context.Context, r types.SensorReading) error {
	if r.Tenant == "" {
		return ErrMissingTenant
	}
	if r.ReadingID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"reading_id":  r.ReadingID,
		"tenant":      r.Tenant,
		"device_id":   r.DeviceID,
		"dev_eui":     strings.ToUpper(r.DevEUI),
		"fcnt":        r.FCnt,
		"occupied":    r.Occupied,
		"rssi":        r.RSSI,
		"snr":         r.SNR,
		"payload":     string(r.Payload),
		"received_at": r.ReceivedAt.UTC(),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sensor_readings (reading_id, tenant, device_id, dev_eui, fcnt, occupied, rssi, snr, payload, received_at)
		VALUES (@reading_id, @tenant, @device_id, @dev_eui, @fcnt, @occupied, @rssi, @snr, @payload, @received_at)
	`, args)

	return mapPgError(err)
}

func (s *Storage) QueryReadings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.SensorReading], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "received_at"
		condition.sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT reading_id, tenant, device_id, dev_eui, fcnt, occupied, rssi, snr, payload, received_at, count(*) OVER () AS total
		FROM sensor_readings
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.SensorReading]{}, err
	}

	var r types.SensorReading
	var total int64

	readings := make([]types.SensorReading, 0)

	_, err = pgx.ForEachRow(rows, []any{&r.ReadingID, &r.Tenant, &r.DeviceID, &r.DevEUI, &r.FCnt, &r.Occupied, &r.RSSI, &r.SNR, &r.Payload, &r.ReceivedAt, &total}, func() error {
		readings = append(readings, r)
		return nil
	})
	if err != nil {
		return types.Collection[types.SensorReading]{}, err
	}

	return types.Collection[types.SensorReading]{
		Data:       readings,
		Count:      uint64(len(readings)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}

// DeleteReadingsBefore removes sensor readings older than the cutoff.
// Used by the retention cleanup job.
func (s *Storage) DeleteReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM sensor_readings
		WHERE received_at < @cutoff
	`, pgx.NamedArgs{
		"cutoff": cutoff.UTC(),
	})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// TrackOrphan records an uplink from a device we know nothing about.
// Repeat sightings bump the counter and last seen timestamp.
func (s *Storage) TrackOrphan(ctx context.Context, devEUI string, payload []byte, seenAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO orphan_devices (dev_eui, first_seen, last_seen, message_count, last_payload)
		VALUES (@dev_eui, @seen_at, @seen_at, 1, @payload)
		ON CONFLICT (dev_eui)
		DO UPDATE SET
			last_seen = @seen_at,
			message_count = orphan_devices.message_count + 1,
			last_payload = @payload
	`, pgx.NamedArgs{
		"dev_eui": strings.ToUpper(devEUI),
		"seen_at": seenAt.UTC(),
		"payload": string(payload),
	})

	return err
}

func (s *Storage) QueryOrphans(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.OrphanDevice], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT dev_eui, first_seen, last_seen, message_count, last_payload, count(*) OVER () AS total
		FROM orphan_devices
		WHERE %s
		ORDER BY last_seen DESC
		%s
	`, condition.Where(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.OrphanDevice]{}, err
	}

	var o types.OrphanDevice
	var total int64

	orphans := make([]types.OrphanDevice, 0)

	_, err = pgx.ForEachRow(rows, []any{&o.DevEUI, &o.FirstSeen, &o.LastSeen, &o.MessageCount, &o.LastPayload, &total}, func() error {
		orphans = append(orphans, o)
		return nil
	})
	if err != nil {
		return types.Collection[types.OrphanDevice]{}, err
	}

	return types.Collection[types.OrphanDevice]{
		Data:       orphans,
		Count:      uint64(len(orphans)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}
