package occupancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/display"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const (
	SourceSensor      = "sensor"
	SourceReservation = "reservation"
	SourceOperator    = "operator"
)

var ErrInvalidState = fmt.Errorf("invalid space state")

//go:generate moq -rm -out reconciler_mock.go . Reconciler
type Reconciler interface {
	Reconcile(ctx context.Context, space types.Space, observed types.SpaceState, source string) (bool, error)
}

//go:generate moq -rm -out spacestorage_mock.go . SpaceStorage
type SpaceStorage interface {
	UpdateSpaceState(ctx context.Context, spaceID string, from, to types.SpaceState, sensorState *types.SpaceState, changedAt time.Time) error
	UpdateDisplayState(ctx context.Context, spaceID, displayState string) error
}

type reconciler struct {
	storage   SpaceStorage
	resolver  *display.Resolver
	commands  display.CommandQueuer
	messenger messaging.MsgContext
	now       func() time.Time
}

func New(s SpaceStorage, resolver *display.Resolver, commands display.CommandQueuer, messenger messaging.MsgContext) Reconciler {
	return &reconciler{
		storage:   s,
		resolver:  resolver,
		commands:  commands,
		messenger: messenger,
		now:       time.Now,
	}
}

// Reconcile applies an observed state to a space. Transitions for a
// given space are serialized through a conditional update guarded on
// the state the caller observed, so two concurrent writers cannot
// interleave a read-modify-write; the loser of the race is a no-op.
//
// Sensor reports never override maintenance, and an occupied report
// does not retract a reserved state: reservation and operator intent
// outrank automatic sensing.
func (r *reconciler) Reconcile(ctx context.Context, space types.Space, observed types.SpaceState, source string) (bool, error) {
	if !observed.Valid() {
		return false, ErrInvalidState
	}

	if observed == space.CurrentState {
		return false, nil
	}

	if source == SourceSensor {
		if space.CurrentState == types.SpaceStateMaintenance || space.CurrentState == types.SpaceStateReserved {
			return false, nil
		}
	}

	if source == SourceReservation && space.CurrentState == types.SpaceStateMaintenance {
		return false, nil
	}

	var sensorState *types.SpaceState
	if source == SourceSensor {
		sensorState = &observed
	}

	changedAt := r.now().UTC()

	err := r.storage.UpdateSpaceState(ctx, space.SpaceID, space.CurrentState, observed, sensorState, changedAt)
	if err != nil {
		if errors.Is(err, storage.ErrNotUpdated) {
			// another writer transitioned the space first
			return false, nil
		}
		return false, err
	}

	log := logging.GetFromContext(ctx)
	log.Debug("space state changed", "space_id", space.SpaceID, "from", string(space.CurrentState), "to", string(observed), "source", source)

	action, err := r.resolver.Submit(ctx, r.commands, space, observed)
	if err != nil {
		log.Error("could not queue display command", "space_id", space.SpaceID, "err", err.Error())
	} else if space.DisplayDeviceID != "" {
		err = r.storage.UpdateDisplayState(ctx, space.SpaceID, action.Color)
		if err != nil {
			log.Error("could not update display state", "space_id", space.SpaceID, "err", err.Error())
		}
	}

	err = r.messenger.PublishOnTopic(ctx, &types.SpaceStateChanged{
		SpaceID:       space.SpaceID,
		Tenant:        space.Tenant,
		PreviousState: space.CurrentState,
		NewState:      observed,
		Source:        source,
		Timestamp:     changedAt,
	})
	if err != nil {
		log.Error("could not publish state change", "space_id", space.SpaceID, "err", err.Error())
	}

	return true, nil
}
