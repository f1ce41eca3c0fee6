package reservations

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/display"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/occupancy"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

// ReserveLookahead is how close to its start a new reservation has to
// be for the space to transition to reserved immediately.
const ReserveLookahead = 15 * time.Minute

var ErrReservationNotFound = fmt.Errorf("reservation not found")
var ErrSpaceNotFound = fmt.Errorf("space not found")
var ErrNotAllowed = fmt.Errorf("access to reservation denied")
var ErrNotActive = fmt.Errorf("reservation is not active")
var ErrInvalidWindow = fmt.Errorf("invalid reservation window")

// ConflictError reports the active reservations whose windows overlap
// the requested one.
type ConflictError struct {
	Conflicts []types.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("space has %d conflicting reservation(s)", len(e.Conflicts))
}

//go:generate moq -rm -out engine_mock.go . Engine
type Engine interface {
	Create(ctx context.Context, tenants []string, spaceID string, start, end time.Time, idempotencyKey string) (types.Reservation, error)
	Cancel(ctx context.Context, tenants []string, reservationID, reason string) error
	CheckAvailability(ctx context.Context, tenants []string, spaceID string, start, end time.Time) (bool, []types.Reservation, error)
	Get(ctx context.Context, tenants []string, reservationID string) (types.Reservation, error)
	List(ctx context.Context, tenants []string, conditions ...storage.ConditionFunc) (types.Collection[types.Reservation], error)
	ExpireSweep(ctx context.Context) error
}

//go:generate moq -rm -out reservationstorage_mock.go . ReservationStorage
type ReservationStorage interface {
	AddReservation(ctx context.Context, r types.Reservation) error
	GetReservation(ctx context.Context, conditions ...storage.ConditionFunc) (types.Reservation, error)
	QueryReservations(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Reservation], error)
	CancelReservation(ctx context.Context, reservationID, reason string, cancelledAt time.Time) error
	ExpireReservations(ctx context.Context, now time.Time) (int64, error)
	ReleaseUncoveredSpaces(ctx context.Context, now time.Time) ([]types.Space, error)
	GetSpace(ctx context.Context, conditions ...storage.ConditionFunc) (types.Space, error)
}

type engine struct {
	storage    ReservationStorage
	reconciler occupancy.Reconciler
	resolver   *display.Resolver
	commands   display.CommandQueuer
	messenger  messaging.MsgContext
	now        func() time.Time
}

func New(s ReservationStorage, reconciler occupancy.Reconciler, resolver *display.Resolver, commands display.CommandQueuer, messenger messaging.MsgContext) Engine {
	return &engine{
		storage:    s,
		reconciler: reconciler,
		resolver:   resolver,
		commands:   commands,
		messenger:  messenger,
		now:        time.Now,
	}
}

// Create makes a reservation for the half open window [start, end).
// Repeated calls with the same tenant and idempotency key return the
// reservation created by the first call, with no new row and no side
// effects. The overlap query is a fast path only: the storage level
// exclusion constraint is what actually guarantees no double booking
// under concurrent creates.
func (e *engine) Create(ctx context.Context, tenants []string, spaceID string, start, end time.Time, idempotencyKey string) (types.Reservation, error) {
	now := e.now().UTC()

	if !end.After(start) {
		return types.Reservation{}, fmt.Errorf("%w: end must be after start", ErrInvalidWindow)
	}
	if start.Before(now) {
		return types.Reservation{}, fmt.Errorf("%w: start must not be in the past", ErrInvalidWindow)
	}

	space, err := e.storage.GetSpace(ctx, storage.WithSpaceID(spaceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Reservation{}, ErrSpaceNotFound
		}
		return types.Reservation{}, err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, space.Tenant) {
		return types.Reservation{}, ErrNotAllowed
	}

	if idempotencyKey != "" {
		existing, err := e.storage.GetReservation(ctx, storage.WithIdempotencyKey(idempotencyKey), storage.WithTenant(space.Tenant))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, storage.ErrNoRows) {
			return types.Reservation{}, err
		}
	}

	conflicts, err := e.conflictingReservations(ctx, spaceID, start, end)
	if err != nil {
		return types.Reservation{}, err
	}
	if len(conflicts) > 0 {
		return types.Reservation{}, &ConflictError{Conflicts: conflicts}
	}

	reservation := types.Reservation{
		ReservationID:  uuid.NewString(),
		Tenant:         space.Tenant,
		SpaceID:        spaceID,
		StartTime:      start.UTC(),
		EndTime:        end.UTC(),
		Status:         types.ReservationActive,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
	}

	err = e.storage.AddReservation(ctx, reservation)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// lost the race to a concurrent create
			conflicts, cerr := e.conflictingReservations(ctx, spaceID, start, end)
			if cerr != nil {
				return types.Reservation{}, cerr
			}
			return types.Reservation{}, &ConflictError{Conflicts: conflicts}
		}
		if errors.Is(err, storage.ErrAlreadyExists) && idempotencyKey != "" {
			// a concurrent replay with the same key won the insert
			return e.storage.GetReservation(ctx, storage.WithIdempotencyKey(idempotencyKey), storage.WithTenant(space.Tenant))
		}
		return types.Reservation{}, err
	}

	if start.Before(now.Add(ReserveLookahead)) {
		if space.CurrentState != types.SpaceStateOccupied && space.CurrentState != types.SpaceStateMaintenance {
			_, err = e.reconciler.Reconcile(ctx, space, types.SpaceStateReserved, occupancy.SourceReservation)
			if err != nil {
				logging.GetFromContext(ctx).Error("could not reconcile space to reserved", "space_id", spaceID, "err", err.Error())
			}
		}
	}

	err = e.messenger.PublishOnTopic(ctx, &types.ReservationCreated{
		ReservationID: reservation.ReservationID,
		SpaceID:       spaceID,
		Tenant:        space.Tenant,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Timestamp:     now,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("could not publish reservation created", "reservation_id", reservation.ReservationID, "err", err.Error())
	}

	return reservation, nil
}

// Cancel transitions an active reservation to cancelled and reverts
// the space to free when no other active reservation covers now.
func (e *engine) Cancel(ctx context.Context, tenants []string, reservationID, reason string) error {
	reservation, err := e.storage.GetReservation(ctx, storage.WithReservationID(reservationID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, reservation.Tenant) {
		return ErrNotAllowed
	}

	if reservation.Status != types.ReservationActive {
		return ErrNotActive
	}

	now := e.now().UTC()

	err = e.storage.CancelReservation(ctx, reservationID, reason, now)
	if err != nil {
		if errors.Is(err, storage.ErrNotUpdated) {
			return ErrNotActive
		}
		return err
	}

	log := logging.GetFromContext(ctx)

	covering, err := e.storage.QueryReservations(ctx,
		storage.WithSpaceID(reservation.SpaceID),
		storage.WithReservationStatus(string(types.ReservationActive)),
		storage.WithCoverage(now),
	)
	if err != nil {
		log.Error("could not query covering reservations", "space_id", reservation.SpaceID, "err", err.Error())
	} else if covering.Count == 0 {
		space, err := e.storage.GetSpace(ctx, storage.WithSpaceID(reservation.SpaceID))
		if err == nil && space.CurrentState == types.SpaceStateReserved {
			_, err = e.reconciler.Reconcile(ctx, space, types.SpaceStateFree, occupancy.SourceReservation)
			if err != nil {
				log.Error("could not revert space to free", "space_id", space.SpaceID, "err", err.Error())
			}
		}
	}

	err = e.messenger.PublishOnTopic(ctx, &types.ReservationCancelled{
		ReservationID: reservationID,
		SpaceID:       reservation.SpaceID,
		Tenant:        reservation.Tenant,
		Reason:        reason,
		Timestamp:     now,
	})
	if err != nil {
		log.Error("could not publish reservation cancelled", "reservation_id", reservationID, "err", err.Error())
	}

	return nil
}

// CheckAvailability is a pure read used as a pre-create fast path and
// as an external API.
func (e *engine) CheckAvailability(ctx context.Context, tenants []string, spaceID string, start, end time.Time) (bool, []types.Reservation, error) {
	space, err := e.storage.GetSpace(ctx, storage.WithSpaceID(spaceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return false, nil, ErrSpaceNotFound
		}
		return false, nil, err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, space.Tenant) {
		return false, nil, ErrNotAllowed
	}

	conflicts, err := e.conflictingReservations(ctx, spaceID, start, end)
	if err != nil {
		return false, nil, err
	}

	return len(conflicts) == 0, conflicts, nil
}

func (e *engine) Get(ctx context.Context, tenants []string, reservationID string) (types.Reservation, error) {
	reservation, err := e.storage.GetReservation(ctx, storage.WithReservationID(reservationID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Reservation{}, ErrReservationNotFound
		}
		return types.Reservation{}, err
	}

	if len(tenants) > 0 && !slices.Contains(tenants, reservation.Tenant) {
		return types.Reservation{}, ErrNotAllowed
	}

	return reservation, nil
}

func (e *engine) List(ctx context.Context, tenants []string, conditions ...storage.ConditionFunc) (types.Collection[types.Reservation], error) {
	conditions = append(conditions, storage.WithTenants(tenants))
	return e.storage.QueryReservations(ctx, conditions...)
}

// ExpireSweep expires ended, never checked in reservations and reverts
// reserved spaces that no active reservation covers anymore. Both steps
// are bulk conditional updates against a single now snapshot, so the
// sweep is idempotent and safe to run concurrently with Create and
// Cancel.
func (e *engine) ExpireSweep(ctx context.Context) error {
	now := e.now().UTC()
	log := logging.GetFromContext(ctx)

	expired, err := e.storage.ExpireReservations(ctx, now)
	if err != nil {
		return fmt.Errorf("could not expire reservations: %w", err)
	}

	released, err := e.storage.ReleaseUncoveredSpaces(ctx, now)
	if err != nil {
		return fmt.Errorf("could not release uncovered spaces: %w", err)
	}

	if expired > 0 || len(released) > 0 {
		log.Info("expire sweep finished", "expired", expired, "released", len(released))
	}

	for _, space := range released {
		_, err = e.resolver.Submit(ctx, e.commands, space, types.SpaceStateFree)
		if err != nil {
			log.Error("could not queue display command", "space_id", space.SpaceID, "err", err.Error())
		}

		err = e.messenger.PublishOnTopic(ctx, &types.SpaceStateChanged{
			SpaceID:       space.SpaceID,
			Tenant:        space.Tenant,
			PreviousState: types.SpaceStateReserved,
			NewState:      types.SpaceStateFree,
			Source:        occupancy.SourceReservation,
			Timestamp:     now,
		})
		if err != nil {
			log.Error("could not publish state change", "space_id", space.SpaceID, "err", err.Error())
		}
	}

	return nil
}

func (e *engine) conflictingReservations(ctx context.Context, spaceID string, start, end time.Time) ([]types.Reservation, error) {
	result, err := e.storage.QueryReservations(ctx,
		storage.WithSpaceID(spaceID),
		storage.WithReservationStatus(string(types.ReservationActive)),
		storage.WithOverlap(start, end),
	)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}
