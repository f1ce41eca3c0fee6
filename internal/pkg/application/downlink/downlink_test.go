package downlink

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/matryer/is"
)

func TestQueueCommandInsertsAsQueued(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return sign01Display(), nil
		},
		AddCommandFunc: func(ctx context.Context, cmd types.DownlinkCommand) error {
			return nil
		},
	}

	svc := New(s)
	id, err := svc.QueueCommand(context.Background(), []string{"acme"}, "display-01", "set_display", json.RawMessage(`{"color":"red"}`), 3, false)

	is.NoErr(err)
	is.True(id != "")

	added := s.AddCommandCalls()
	is.Equal(len(added), 1)
	is.Equal(added[0].Cmd.Status, types.CommandQueued)
	is.Equal(added[0].Cmd.Tenant, "acme")
	is.Equal(added[0].Cmd.DevEUI, "B0FA5C495B10")
	is.Equal(added[0].Cmd.Priority, 3)
}

func TestQueueCommandRejectsForeignTenant(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return sign01Display(), nil
		},
	}

	svc := New(s)
	_, err := svc.QueueCommand(context.Background(), []string{"other"}, "display-01", "set_display", nil, 3, false)

	is.True(errors.Is(err, ErrNotAllowed))
}

func TestQueueCommandSystemPrincipalSkipsOwnershipCheck(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return sign01Display(), nil
		},
		AddCommandFunc: func(ctx context.Context, cmd types.DownlinkCommand) error {
			return nil
		},
	}

	svc := New(s)
	_, err := svc.QueueCommand(context.Background(), nil, "display-01", "set_display", nil, 3, false)

	is.NoErr(err)
}

func TestQueueCommandUnknownDevice(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return types.Device{}, storage.ErrNoRows
		},
	}

	svc := New(s)
	_, err := svc.QueueCommand(context.Background(), []string{"acme"}, "nosuch", "set_display", nil, 3, false)

	is.True(errors.Is(err, ErrDeviceNotFound))
}

func TestMarkFailedWithRetriesLeftRequeues(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetCommandByIDFunc: func(ctx context.Context, commandID string) (types.DownlinkCommand, error) {
			return types.DownlinkCommand{CommandID: commandID, RetryCount: 2, Status: types.CommandPending}, nil
		},
		RequeueCommandFunc: func(ctx context.Context, commandID string, retryCount int, lastError string) error {
			return nil
		},
	}

	svc := New(s)
	err := svc.MarkFailed(context.Background(), "cmd-1", "timeout", true)

	is.NoErr(err)
	requeued := s.RequeueCommandCalls()
	is.Equal(len(requeued), 1)
	is.Equal(requeued[0].RetryCount, 3)
	is.Equal(requeued[0].LastError, "timeout")
	is.Equal(len(s.FailCommandCalls()), 0)
}

func TestMarkFailedAtMaxRetriesIsTerminal(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetCommandByIDFunc: func(ctx context.Context, commandID string) (types.DownlinkCommand, error) {
			return types.DownlinkCommand{CommandID: commandID, RetryCount: 3, Status: types.CommandPending}, nil
		},
		FailCommandFunc: func(ctx context.Context, commandID string, retryCount int, lastError string) error {
			return nil
		},
	}

	svc := New(s)
	err := svc.MarkFailed(context.Background(), "cmd-1", "timeout", true)

	is.NoErr(err)
	is.Equal(len(s.FailCommandCalls()), 1)
	is.Equal(s.FailCommandCalls()[0].RetryCount, 4)
}

func TestMarkFailedWithoutRetryIsTerminal(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		GetCommandByIDFunc: func(ctx context.Context, commandID string) (types.DownlinkCommand, error) {
			return types.DownlinkCommand{CommandID: commandID, RetryCount: 0, Status: types.CommandPending}, nil
		},
		FailCommandFunc: func(ctx context.Context, commandID string, retryCount int, lastError string) error {
			return nil
		},
	}

	svc := New(s)
	err := svc.MarkFailed(context.Background(), "cmd-1", "rejected by device", false)

	is.NoErr(err)
	is.Equal(len(s.FailCommandCalls()), 1)
	is.Equal(len(s.RequeueCommandCalls()), 0)
}

func TestGetNextCommandMapsEmptyQueue(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		NextCommandFunc: func(ctx context.Context, devEUI string, sentAt time.Time) (types.DownlinkCommand, error) {
			return types.DownlinkCommand{}, storage.ErrNoRows
		},
	}

	svc := New(s)
	_, err := svc.GetNextCommand(context.Background(), "B0FA5C495B10")

	is.True(errors.Is(err, ErrNoCommands))
}

func TestHistoryDefaultsLimit(t *testing.T) {
	is := is.New(t)
	s := &CommandStorageMock{
		QueryCommandsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DownlinkCommand], error) {
			c := &storage.Condition{}
			for _, f := range conditions {
				f(c)
			}
			is.Equal(c.Limit(), DefaultHistory)
			return types.Collection[types.DownlinkCommand]{}, nil
		},
	}

	svc := New(s)
	_, err := svc.History(context.Background(), "display-01", []string{"acme"}, 0)

	is.NoErr(err)
	is.Equal(len(s.QueryCommandsCalls()), 1)
}

func sign01Display() types.Device {
	return types.Device{
		DeviceID: "display-01",
		DevEUI:   "B0FA5C495B10",
		Tenant:   "acme",
		Kind:     types.DeviceKindDisplay,
		Status:   types.DeviceStatusActive,
	}
}
