package provisioning

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// SpaceStorage is the subset of the storage layer that seeding needs.
type SpaceStorage interface {
	AddSpace(ctx context.Context, space types.Space) error
	AddDevice(ctx context.Context, device types.Device) error
}

// Seed loads spaces and their attached devices from a semicolon separated
// file. Rows for tenants outside validTenants are skipped, rows that
// already exist in storage are left untouched.
func Seed(ctx context.Context, s SpaceStorage, spaces io.ReadCloser, validTenants []string) error {
	log := logging.GetFromContext(ctx)
	defer spaces.Close()

	r := csv.NewReader(spaces)
	r.Comma = ';'

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	records, err := getRecordsFromRows(rows)
	if err != nil {
		return err
	}

	log.Info("loaded spaces from file", slog.Int("rows", len(rows)), slog.Int("records", len(records)))

	for _, record := range records {
		if !slices.Contains(validTenants, record.tenant) {
			log.Warn("tenant not allowed", "space_id", record.spaceID, "tenant", record.tenant)
			continue
		}

		err = s.AddSpace(ctx, record.mapToSpace())
		if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return err
		}

		if record.deviceID == "" {
			continue
		}

		err = s.AddDevice(ctx, record.mapToDevice())
		if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return err
		}
	}

	return nil
}

type spaceRecord struct {
	spaceID  string
	siteID   string
	tenant   string
	deviceID string
	devEUI   string
	kind     string
}

func (sr spaceRecord) mapToSpace() types.Space {
	return types.Space{
		SpaceID:      sr.spaceID,
		SiteID:       sr.siteID,
		Tenant:       sr.tenant,
		CurrentState: types.SpaceStateUnknown,
	}
}

func (sr spaceRecord) mapToDevice() types.Device {
	return types.Device{
		DeviceID: sr.deviceID,
		DevEUI:   strings.ToUpper(sr.devEUI),
		Tenant:   sr.tenant,
		Kind:     sr.kind,
		Status:   types.DeviceStatusProvisioned,
		SpaceID:  sr.spaceID,
	}
}

func newSpaceRecord(r []string) (spaceRecord, error) {
	if len(r) < 6 {
		return spaceRecord{}, fmt.Errorf("row has %d columns, expected 6", len(r))
	}

	sr := spaceRecord{
		spaceID:  strings.TrimSpace(r[0]),
		siteID:   strings.TrimSpace(r[1]),
		tenant:   strings.TrimSpace(r[2]),
		deviceID: strings.TrimSpace(r[3]),
		devEUI:   strings.TrimSpace(r[4]),
		kind:     strings.ToLower(strings.TrimSpace(r[5])),
	}

	if sr.spaceID == "" {
		return spaceRecord{}, fmt.Errorf("row is missing a space id")
	}

	if sr.deviceID != "" && !slices.Contains([]string{types.DeviceKindSensor, types.DeviceKindDisplay}, sr.kind) {
		return spaceRecord{}, fmt.Errorf("row with %s contains invalid device kind %s", sr.spaceID, sr.kind)
	}

	return sr, nil
}

func getRecordsFromRows(rows [][]string) ([]spaceRecord, error) {
	records := []spaceRecord{}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec, err := newSpaceRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
