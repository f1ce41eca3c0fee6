package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/display"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/occupancy"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestCreateRejectsInvalidWindow(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	svc := f.engine()

	start := f.now.Add(time.Hour)

	_, err := svc.Create(context.Background(), []string{"acme"}, "space-1", start, start, "")
	is.True(errors.Is(err, ErrInvalidWindow))

	_, err = svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(-time.Hour), start, "")
	is.True(errors.Is(err, ErrInvalidWindow))
}

func TestCreateInsertsActiveReservation(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	svc := f.engine()

	r, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour), "")

	is.NoErr(err)
	is.Equal(r.Status, types.ReservationActive)
	is.Equal(r.Tenant, "acme")

	added := f.storage.AddReservationCalls()
	is.Equal(len(added), 1)
	is.Equal(added[0].R.SpaceID, "space-1")

	// not within the lookahead window, so no state transition
	is.Equal(len(f.reconciler.ReconcileCalls()), 0)
	is.Equal(len(f.messenger.PublishOnTopicCalls()), 1)
}

func TestCreateWithinLookaheadReservesSpace(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	svc := f.engine()

	_, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(10*time.Minute), f.now.Add(time.Hour), "")

	is.NoErr(err)
	reconciled := f.reconciler.ReconcileCalls()
	is.Equal(len(reconciled), 1)
	is.Equal(reconciled[0].Observed, types.SpaceStateReserved)
	is.Equal(reconciled[0].Source, occupancy.SourceReservation)
}

func TestCreateSkipsReserveWhenSpaceOccupied(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	f.space.CurrentState = types.SpaceStateOccupied
	svc := f.engine()

	_, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(10*time.Minute), f.now.Add(time.Hour), "")

	is.NoErr(err)
	is.Equal(len(f.reconciler.ReconcileCalls()), 0)
}

func TestCreateReturnsConflicts(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	existing := types.Reservation{ReservationID: "r-existing", SpaceID: "space-1", Status: types.ReservationActive}
	f.conflicts = []types.Reservation{existing}
	svc := f.engine()

	_, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour), "")

	var conflict *ConflictError
	is.True(errors.As(err, &conflict))
	is.Equal(len(conflict.Conflicts), 1)
	is.Equal(conflict.Conflicts[0].ReservationID, "r-existing")
	is.Equal(len(f.storage.AddReservationCalls()), 0)
}

func TestCreateIdempotentReplayReturnsOriginal(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	original := types.Reservation{ReservationID: "r-1", Tenant: "acme", SpaceID: "space-1", Status: types.ReservationActive, IdempotencyKey: "key-1"}
	f.storage.GetReservationFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Reservation, error) {
		c := &storage.Condition{}
		for _, fn := range conditions {
			fn(c)
		}
		if c.IdempotencyKey == "key-1" {
			return original, nil
		}
		return types.Reservation{}, storage.ErrNoRows
	}
	svc := f.engine()

	r, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour), "key-1")

	is.NoErr(err)
	is.Equal(r.ReservationID, "r-1")
	is.Equal(len(f.storage.AddReservationCalls()), 0)
	is.Equal(len(f.messenger.PublishOnTopicCalls()), 0)
}

func TestCreateMapsExclusionViolationToConflict(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	f.storage.AddReservationFunc = func(ctx context.Context, r types.Reservation) error {
		return storage.ErrConflict
	}
	svc := f.engine()

	_, err := svc.Create(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour), "")

	var conflict *ConflictError
	is.True(errors.As(err, &conflict))
}

func TestCreateRejectsForeignTenant(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	svc := f.engine()

	_, err := svc.Create(context.Background(), []string{"other"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour), "")

	is.True(errors.Is(err, ErrNotAllowed))
}

func TestCancelRevertsUncoveredSpace(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	f.space.CurrentState = types.SpaceStateReserved
	f.storage.GetReservationFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Reservation, error) {
		return types.Reservation{ReservationID: "r-1", Tenant: "acme", SpaceID: "space-1", Status: types.ReservationActive}, nil
	}
	svc := f.engine()

	err := svc.Cancel(context.Background(), []string{"acme"}, "r-1", "change of plans")

	is.NoErr(err)
	is.Equal(len(f.storage.CancelReservationCalls()), 1)

	reconciled := f.reconciler.ReconcileCalls()
	is.Equal(len(reconciled), 1)
	is.Equal(reconciled[0].Observed, types.SpaceStateFree)
}

func TestCancelNonActiveReservationFails(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	f.storage.GetReservationFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Reservation, error) {
		return types.Reservation{ReservationID: "r-1", Tenant: "acme", SpaceID: "space-1", Status: types.ReservationStatusCancelled}, nil
	}
	svc := f.engine()

	err := svc.Cancel(context.Background(), []string{"acme"}, "r-1", "")

	is.True(errors.Is(err, ErrNotActive))
}

func TestCheckAvailability(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	svc := f.engine()

	available, conflicts, err := svc.CheckAvailability(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour))
	is.NoErr(err)
	is.True(available)
	is.Equal(len(conflicts), 0)

	f.conflicts = []types.Reservation{{ReservationID: "r-existing"}}
	available, conflicts, err = svc.CheckAvailability(context.Background(), []string{"acme"}, "space-1", f.now.Add(time.Hour), f.now.Add(2*time.Hour))
	is.NoErr(err)
	is.True(!available)
	is.Equal(len(conflicts), 1)
}

func TestExpireSweepReleasesSpacesAndNotifies(t *testing.T) {
	is := is.New(t)
	f := newFixture(t)
	f.storage.ExpireReservationsFunc = func(ctx context.Context, now time.Time) (int64, error) {
		return 2, nil
	}
	f.storage.ReleaseUncoveredSpacesFunc = func(ctx context.Context, now time.Time) ([]types.Space, error) {
		return []types.Space{
			{SpaceID: "space-1", Tenant: "acme", CurrentState: types.SpaceStateFree, DisplayDeviceID: "display-01"},
		}, nil
	}
	svc := f.engine()

	err := svc.ExpireSweep(context.Background())

	is.NoErr(err)
	is.Equal(len(f.commands.QueueCommandCalls()), 1)
	is.Equal(len(f.messenger.PublishOnTopicCalls()), 1)
}

type fixture struct {
	now        time.Time
	space      types.Space
	conflicts  []types.Reservation
	storage    *ReservationStorageMock
	reconciler *occupancy.ReconcilerMock
	commands   *display.CommandQueuerMock
	messenger  *messaging.MsgContextMock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		now: time.Now().UTC(),
		space: types.Space{
			SpaceID:         "space-1",
			Tenant:          "acme",
			CurrentState:    types.SpaceStateFree,
			DisplayDeviceID: "display-01",
		},
	}

	f.storage = &ReservationStorageMock{
		GetSpaceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Space, error) {
			return f.space, nil
		},
		GetReservationFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Reservation, error) {
			return types.Reservation{}, storage.ErrNoRows
		},
		QueryReservationsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Reservation], error) {
			return types.Collection[types.Reservation]{Data: f.conflicts, Count: uint64(len(f.conflicts))}, nil
		},
		AddReservationFunc: func(ctx context.Context, r types.Reservation) error {
			return nil
		},
		CancelReservationFunc: func(ctx context.Context, reservationID, reason string, cancelledAt time.Time) error {
			return nil
		},
	}
	f.reconciler = &occupancy.ReconcilerMock{
		ReconcileFunc: func(ctx context.Context, space types.Space, observed types.SpaceState, source string) (bool, error) {
			return true, nil
		},
	}
	f.commands = &display.CommandQueuerMock{
		QueueCommandFunc: func(ctx context.Context, tenants []string, deviceID string, commandType string, payload json.RawMessage, priority int, confirmed bool) (string, error) {
			return "cmd-1", nil
		},
	}
	f.messenger = &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return f
}

func (f *fixture) engine() Engine {
	return New(f.storage, f.reconciler, display.NewResolver(nil), f.commands, f.messenger)
}
