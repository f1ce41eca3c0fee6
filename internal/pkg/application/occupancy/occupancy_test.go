package occupancy

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/display"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestReconcileAppliesSensorOccupied(t *testing.T) {
	is, s, q, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), q, m)

	space := freeSpace()
	changed, err := svc.Reconcile(context.Background(), space, types.SpaceStateOccupied, SourceSensor)

	is.NoErr(err)
	is.True(changed)

	updated := s.UpdateSpaceStateCalls()
	is.Equal(len(updated), 1)
	is.Equal(updated[0].From, types.SpaceStateFree)
	is.Equal(updated[0].To, types.SpaceStateOccupied)
	is.True(updated[0].SensorState != nil)

	queued := q.QueueCommandCalls()
	is.Equal(len(queued), 1)
	is.Equal(queued[0].DeviceID, "display-01")
	is.Equal(string(queued[0].Payload), `{"color":"red","pattern":"solid"}`)

	is.Equal(len(m.PublishOnTopicCalls()), 1)
}

func TestReconcileNoopWhenStateUnchanged(t *testing.T) {
	is, s, q, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), q, m)

	changed, err := svc.Reconcile(context.Background(), freeSpace(), types.SpaceStateFree, SourceSensor)

	is.NoErr(err)
	is.True(!changed)
	is.Equal(len(s.UpdateSpaceStateCalls()), 0)
	is.Equal(len(q.QueueCommandCalls()), 0)
	is.Equal(len(m.PublishOnTopicCalls()), 0)
}

func TestSensorNeverOverridesMaintenance(t *testing.T) {
	is, s, q, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), q, m)

	space := freeSpace()
	space.CurrentState = types.SpaceStateMaintenance

	changed, err := svc.Reconcile(context.Background(), space, types.SpaceStateOccupied, SourceSensor)

	is.NoErr(err)
	is.True(!changed)
	is.Equal(len(s.UpdateSpaceStateCalls()), 0)
}

func TestSensorOccupiedDoesNotRetractReserved(t *testing.T) {
	is, s, _, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), &display.CommandQueuerMock{}, m)

	space := freeSpace()
	space.CurrentState = types.SpaceStateReserved

	changed, err := svc.Reconcile(context.Background(), space, types.SpaceStateOccupied, SourceSensor)

	is.NoErr(err)
	is.True(!changed)
}

func TestReservationOverridesReservedButNotMaintenance(t *testing.T) {
	is, s, q, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), q, m)

	space := freeSpace()
	space.CurrentState = types.SpaceStateReserved

	changed, err := svc.Reconcile(context.Background(), space, types.SpaceStateFree, SourceReservation)
	is.NoErr(err)
	is.True(changed)

	space.CurrentState = types.SpaceStateMaintenance
	changed, err = svc.Reconcile(context.Background(), space, types.SpaceStateFree, SourceReservation)
	is.NoErr(err)
	is.True(!changed)
}

func TestReconcileLostRaceIsNoop(t *testing.T) {
	is := is.New(t)
	s := &SpaceStorageMock{
		UpdateSpaceStateFunc: func(ctx context.Context, spaceID string, from, to types.SpaceState, sensorState *types.SpaceState, changedAt time.Time) error {
			return storage.ErrNotUpdated
		},
	}
	m := &messaging.MsgContextMock{}

	svc := New(s, display.NewResolver(nil), &display.CommandQueuerMock{}, m)

	changed, err := svc.Reconcile(context.Background(), freeSpace(), types.SpaceStateOccupied, SourceSensor)

	is.NoErr(err)
	is.True(!changed)
	is.Equal(len(m.PublishOnTopicCalls()), 0)
}

func TestReconcileRejectsInvalidState(t *testing.T) {
	is, s, q, m := testSetup(t)

	svc := New(s, display.NewResolver(nil), q, m)

	_, err := svc.Reconcile(context.Background(), freeSpace(), types.SpaceState("broken"), SourceSensor)
	is.True(err != nil)
}

func testSetup(t *testing.T) (*is.I, *SpaceStorageMock, *display.CommandQueuerMock, *messaging.MsgContextMock) {
	s := &SpaceStorageMock{
		UpdateSpaceStateFunc: func(ctx context.Context, spaceID string, from, to types.SpaceState, sensorState *types.SpaceState, changedAt time.Time) error {
			return nil
		},
		UpdateDisplayStateFunc: func(ctx context.Context, spaceID string, displayState string) error {
			return nil
		},
	}
	q := &display.CommandQueuerMock{
		QueueCommandFunc: func(ctx context.Context, tenants []string, deviceID string, commandType string, payload json.RawMessage, priority int, confirmed bool) (string, error) {
			return "cmd-1", nil
		},
	}
	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return is.New(t), s, q, m
}

func freeSpace() types.Space {
	return types.Space{
		SpaceID:         "space-1",
		Tenant:          "acme",
		SiteID:          "garage-a",
		Code:            "A-01",
		Enabled:         true,
		CurrentState:    types.SpaceStateFree,
		SensorDeviceID:  "sensor-01",
		DisplayDeviceID: "display-01",
	}
}
