package downlink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

const (
	MaxRetries     = 3
	DefaultHistory = 50
)

var ErrCommandNotFound = fmt.Errorf("command not found")
var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrNotAllowed = fmt.Errorf("access to device denied")
var ErrNoCommands = fmt.Errorf("no queued commands")

//go:generate moq -rm -out dispatcher_mock.go . Dispatcher
type Dispatcher interface {
	QueueCommand(ctx context.Context, tenants []string, deviceID, commandType string, payload json.RawMessage, priority int, confirmed bool) (string, error)
	GetNextCommand(ctx context.Context, devEUI string) (types.DownlinkCommand, error)
	MarkSent(ctx context.Context, commandID string) error
	MarkConfirmed(ctx context.Context, commandID string) error
	MarkFailed(ctx context.Context, commandID, cause string, retry bool) error
	History(ctx context.Context, deviceID string, tenants []string, limit int) (types.Collection[types.DownlinkCommand], error)
	Clear(ctx context.Context, deviceID string, tenants []string) (int64, error)
}

//go:generate moq -rm -out commandstorage_mock.go . CommandStorage
type CommandStorage interface {
	GetDevice(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error)
	AddCommand(ctx context.Context, cmd types.DownlinkCommand) error
	NextCommand(ctx context.Context, devEUI string, sentAt time.Time) (types.DownlinkCommand, error)
	GetCommandByID(ctx context.Context, commandID string) (types.DownlinkCommand, error)
	MarkCommandSent(ctx context.Context, commandID string, sentAt time.Time) error
	MarkCommandConfirmed(ctx context.Context, commandID string, confirmedAt time.Time) error
	RequeueCommand(ctx context.Context, commandID string, retryCount int, lastError string) error
	FailCommand(ctx context.Context, commandID string, retryCount int, lastError string) error
	QueryCommands(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DownlinkCommand], error)
	ClearQueue(ctx context.Context, deviceID, tenant string) (int64, error)
}

type service struct {
	storage CommandStorage
	now     func() time.Time
}

func New(s CommandStorage) Dispatcher {
	return &service{storage: s, now: time.Now}
}

// QueueCommand verifies that the caller may act on the device before
// inserting the command as queued. An empty tenants slice is the
// internal system principal and skips the ownership check.
func (s *service) QueueCommand(ctx context.Context, tenants []string, deviceID, commandType string, payload json.RawMessage, priority int, confirmed bool) (string, error) {
	device, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return "", ErrDeviceNotFound
		}
		return "", err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, device.Tenant) {
		return "", ErrNotAllowed
	}

	cmd := types.DownlinkCommand{
		CommandID:   uuid.NewString(),
		Tenant:      device.Tenant,
		DeviceID:    device.DeviceID,
		DevEUI:      device.DevEUI,
		CommandType: commandType,
		Payload:     payload,
		Priority:    priority,
		Confirmed:   confirmed,
		Status:      types.CommandQueued,
	}

	err = s.storage.AddCommand(ctx, cmd)
	if err != nil {
		return "", err
	}

	return cmd.CommandID, nil
}

// GetNextCommand hands the device's next command to the poller:
// lowest priority number first, oldest first within a tier. The
// command moves to pending and stays re-deliverable until confirmed.
func (s *service) GetNextCommand(ctx context.Context, devEUI string) (types.DownlinkCommand, error) {
	cmd, err := s.storage.NextCommand(ctx, devEUI, s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.DownlinkCommand{}, ErrNoCommands
		}
		return types.DownlinkCommand{}, err
	}

	return cmd, nil
}

func (s *service) MarkSent(ctx context.Context, commandID string) error {
	err := s.storage.MarkCommandSent(ctx, commandID, s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotUpdated) {
			return ErrCommandNotFound
		}
		return err
	}
	return nil
}

func (s *service) MarkConfirmed(ctx context.Context, commandID string) error {
	err := s.storage.MarkCommandConfirmed(ctx, commandID, s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotUpdated) {
			return ErrCommandNotFound
		}
		return err
	}
	return nil
}

// MarkFailed records a delivery failure. When retry is requested and
// the command has attempts left it goes back to queued, keeping its
// original creation time so it does not lose its place in the tier.
// Otherwise it becomes terminally failed, visible via History.
func (s *service) MarkFailed(ctx context.Context, commandID, cause string, retry bool) error {
	cmd, err := s.storage.GetCommandByID(ctx, commandID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrCommandNotFound
		}
		return err
	}

	log := logging.GetFromContext(ctx)

	if retry && cmd.RetryCount < MaxRetries {
		log.Info("requeueing failed command", "command_id", commandID, "retry_count", cmd.RetryCount+1, "cause", cause)
		return s.storage.RequeueCommand(ctx, commandID, cmd.RetryCount+1, cause)
	}

	log.Warn("command failed terminally", "command_id", commandID, "retry_count", cmd.RetryCount+1, "cause", cause)
	return s.storage.FailCommand(ctx, commandID, cmd.RetryCount+1, cause)
}

func (s *service) History(ctx context.Context, deviceID string, tenants []string, limit int) (types.Collection[types.DownlinkCommand], error) {
	if limit <= 0 {
		limit = DefaultHistory
	}

	return s.storage.QueryCommands(ctx,
		storage.WithDeviceID(deviceID),
		storage.WithTenants(tenants),
		storage.WithSortBy("created"),
		storage.WithSortDesc(true),
		storage.WithLimit(limit),
	)
}

// Clear drops all queued and pending commands for a device.
func (s *service) Clear(ctx context.Context, deviceID string, tenants []string) (int64, error) {
	device, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return 0, ErrDeviceNotFound
		}
		return 0, err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, device.Tenant) {
		return 0, ErrNotAllowed
	}

	return s.storage.ClearQueue(ctx, device.DeviceID, device.Tenant)
}
