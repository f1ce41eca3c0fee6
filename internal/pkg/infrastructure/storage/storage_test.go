package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/is"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

func testSetup(t *testing.T) (context.Context, *Storage) {
	ctx := context.Background()

	config := Config{
		host:     "localhost",
		user:     "postgres",
		password: "password",
		port:     "5432",
		dbname:   "postgres",
		sslmode:  "disable",
	}

	s, err := New(ctx, config)
	if err != nil {
		t.SkipNow()
	}

	err = s.Initialize(ctx)
	if err != nil {
		t.SkipNow()
	}

	return ctx, s
}

func newSpace(ctx context.Context, t *testing.T, s *Storage) types.Space {
	t.Helper()

	space := types.Space{
		SpaceID: uuid.NewString(),
		Tenant:  "default",
		SiteID:  "site-1",
		Enabled: true,
	}

	err := s.AddSpace(ctx, space)
	if err != nil {
		t.Fatal(err)
	}

	return space
}

func TestAddAndGetSpace(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)

	found, err := s.GetSpace(ctx, WithSpaceID(space.SpaceID), WithTenants([]string{"default"}))
	is.NoErr(err)
	is.Equal(found.SpaceID, space.SpaceID)
	is.Equal(found.CurrentState, types.SpaceStateUnknown)
}

func TestGetSpaceIsTenantScoped(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)

	_, err := s.GetSpace(ctx, WithSpaceID(space.SpaceID), WithTenants([]string{"someone-else"}))
	is.True(errors.Is(err, ErrNoRows))
}

func TestNextCommandOrdersByPriorityThenAge(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	devEUI := uuid.NewString()

	first5 := queueCommand(ctx, t, s, devEUI, 5)
	only1 := queueCommand(ctx, t, s, devEUI, 1)
	_ = queueCommand(ctx, t, s, devEUI, 5)

	cmd, err := s.NextCommand(ctx, devEUI, time.Now())
	is.NoErr(err)
	is.Equal(cmd.CommandID, only1)
	is.Equal(cmd.Status, types.CommandPending)

	cmd, err = s.NextCommand(ctx, devEUI, time.Now())
	is.NoErr(err)
	is.Equal(cmd.CommandID, first5)
}

func TestNextCommandOnEmptyQueue(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	_, err := s.NextCommand(ctx, uuid.NewString(), time.Now())
	is.True(errors.Is(err, ErrNoRows))
}

func TestOverlappingActiveReservationsAreRejected(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	err := s.AddReservation(ctx, reservation(space.SpaceID, start, start.Add(time.Hour), types.ReservationActive))
	is.NoErr(err)

	err = s.AddReservation(ctx, reservation(space.SpaceID, start.Add(30*time.Minute), start.Add(90*time.Minute), types.ReservationActive))
	is.True(errors.Is(err, ErrConflict))

	err = s.AddReservation(ctx, reservation(space.SpaceID, start.Add(time.Hour), start.Add(2*time.Hour), types.ReservationActive))
	is.NoErr(err)
}

func TestCancelledReservationsDoNotBlockOverlap(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	err := s.AddReservation(ctx, reservation(space.SpaceID, start, start.Add(time.Hour), types.ReservationStatusCancelled))
	is.NoErr(err)

	err = s.AddReservation(ctx, reservation(space.SpaceID, start, start.Add(time.Hour), types.ReservationActive))
	is.NoErr(err)
}

func TestReplayedIdempotencyKeyIsRejected(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	spaceA := newSpace(ctx, t, s)
	spaceB := newSpace(ctx, t, s)
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	r := reservation(spaceA.SpaceID, start, start.Add(time.Hour), types.ReservationActive)
	r.IdempotencyKey = uuid.NewString()

	err := s.AddReservation(ctx, r)
	is.NoErr(err)

	replay := reservation(spaceB.SpaceID, start, start.Add(time.Hour), types.ReservationActive)
	replay.IdempotencyKey = r.IdempotencyKey

	err = s.AddReservation(ctx, replay)
	is.True(errors.Is(err, ErrAlreadyExists))
}

func TestExpireReservations(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)
	start := time.Now().Add(-2 * time.Hour).Truncate(time.Second)

	r := reservation(space.SpaceID, start, start.Add(time.Hour), types.ReservationActive)
	err := s.AddReservation(ctx, r)
	is.NoErr(err)

	count, err := s.ExpireReservations(ctx, time.Now())
	is.NoErr(err)
	is.True(count >= 1)

	found, err := s.GetReservation(ctx, WithReservationID(r.ReservationID))
	is.NoErr(err)
	is.Equal(found.Status, types.ReservationExpired)

	// a second sweep leaves the already expired reservation alone
	_, err = s.ExpireReservations(ctx, time.Now())
	is.NoErr(err)

	found, err = s.GetReservation(ctx, WithReservationID(r.ReservationID))
	is.NoErr(err)
	is.Equal(found.Status, types.ReservationExpired)
}

func TestUpdateDeviceSeenRejectsReplayedCounter(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	device := types.Device{
		DeviceID: uuid.NewString(),
		DevEUI:   uuid.NewString(),
		Tenant:   "default",
		Kind:     types.DeviceKindSensor,
		Status:   types.DeviceStatusActive,
		LastFCnt: 10,
	}

	err := s.AddDevice(ctx, device)
	is.NoErr(err)

	err = s.UpdateDeviceSeen(ctx, device.DeviceID, 11, time.Now())
	is.NoErr(err)

	err = s.UpdateDeviceSeen(ctx, device.DeviceID, 11, time.Now())
	is.True(errors.Is(err, ErrNotUpdated))

	err = s.UpdateDeviceSeen(ctx, device.DeviceID, 5, time.Now())
	is.True(errors.Is(err, ErrNotUpdated))
}

func TestActivateDeviceOnlyFlipsProvisioned(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	device := types.Device{
		DeviceID: uuid.NewString(),
		DevEUI:   uuid.NewString(),
		Tenant:   "default",
		Kind:     types.DeviceKindSensor,
		Status:   types.DeviceStatusProvisioned,
	}

	err := s.AddDevice(ctx, device)
	is.NoErr(err)

	activated, err := s.ActivateDevice(ctx, device.DeviceID)
	is.NoErr(err)
	is.True(activated)

	activated, err = s.ActivateDevice(ctx, device.DeviceID)
	is.NoErr(err)
	is.True(!activated)
}

func TestReserveSpaceIfIdle(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	space := newSpace(ctx, t, s)

	free := types.SpaceStateFree
	err := s.UpdateSpaceState(ctx, space.SpaceID, types.SpaceStateUnknown, types.SpaceStateFree, &free, time.Now())
	is.NoErr(err)

	reserved, err := s.ReserveSpaceIfIdle(ctx, space.SpaceID, time.Now())
	is.NoErr(err)
	is.True(reserved)

	reserved, err = s.ReserveSpaceIfIdle(ctx, space.SpaceID, time.Now())
	is.NoErr(err)
	is.True(!reserved)
}

func TestAddAndQueryReadings(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	deviceID := uuid.NewString()

	err := s.AddReading(ctx, types.SensorReading{
		ReadingID:  uuid.NewString(),
		Tenant:     "default",
		DeviceID:   deviceID,
		DevEUI:     uuid.NewString(),
		FCnt:       1,
		Occupied:   true,
		Payload:    json.RawMessage(`{"data":"01"}`),
		ReceivedAt: time.Now(),
	})
	is.NoErr(err)

	c, err := s.QueryReadings(ctx, WithDeviceID(deviceID), WithTenants([]string{"default"}))
	is.NoErr(err)
	is.Equal(c.Count, uint64(1))
	is.True(c.Data[0].Occupied)
}

func queueCommand(ctx context.Context, t *testing.T, s *Storage, devEUI string, priority int) string {
	t.Helper()

	cmd := types.DownlinkCommand{
		CommandID:   uuid.NewString(),
		Tenant:      "default",
		DeviceID:    "display-" + devEUI,
		DevEUI:      devEUI,
		CommandType: "set_display",
		Payload:     json.RawMessage(`{"color":"green"}`),
		Priority:    priority,
	}

	err := s.AddCommand(ctx, cmd)
	if err != nil {
		t.Fatal(err)
	}

	// created_on breaks priority ties, keep the inserts apart
	time.Sleep(5 * time.Millisecond)

	return cmd.CommandID
}

func reservation(spaceID string, start, end time.Time, status types.ReservationStatus) types.Reservation {
	return types.Reservation{
		ReservationID: uuid.NewString(),
		Tenant:        "default",
		SpaceID:       spaceID,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
	}
}
