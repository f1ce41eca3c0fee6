package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/downlink"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/ingestion"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/reservations"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/webevents"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/presentation/api/auth"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

var tracer = otel.Tracer("parking-space-mgmt/api")

//go:generate moq -rm -out spacereader_mock.go . SpaceReader
type SpaceReader interface {
	GetSpace(ctx context.Context, conditions ...storage.ConditionFunc) (types.Space, error)
	QuerySpaces(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Space], error)
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, gate ingestion.Gate, engine reservations.Engine, dispatcher downlink.Dispatcher, spaces SpaceReader, events webevents.WebEvents) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	router.Route("/api/v0", func(r chi.Router) {
		// the webhook authenticates with an HMAC signature, not a token
		r.Post("/webhooks/uplink", uplinkHandler(log, gate))

		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.AnyScope))

			r.Route("/spaces", func(r chi.Router) {
				r.Get("/", querySpacesHandler(log, spaces))
				r.Get("/{spaceID}", getSpaceHandler(log, spaces))
				r.Get("/{spaceID}/availability", checkAvailabilityHandler(log, engine))
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Post("/", createReservationHandler(log, engine))
				r.Get("/", queryReservationsHandler(log, engine))
				r.Get("/{reservationID}", getReservationHandler(log, engine))
				r.Delete("/{reservationID}", cancelReservationHandler(log, engine))
			})

			r.Route("/commands", func(r chi.Router) {
				r.Post("/", queueCommandHandler(log, dispatcher))
				r.Get("/", commandHistoryHandler(log, dispatcher))
				r.Delete("/", clearQueueHandler(log, dispatcher))
				r.Get("/next", nextCommandHandler(log, dispatcher))
				r.Post("/{commandID}/sent", commandSentHandler(log, dispatcher))
				r.Post("/{commandID}/confirmed", commandConfirmedHandler(log, dispatcher))
				r.Post("/{commandID}/failed", commandFailedHandler(log, dispatcher))
			})

			r.Get("/events", eventsHandler(events))
		})
	})

	return router, nil
}

func uplinkHandler(log *slog.Logger, gate ingestion.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "uplink")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := gate.Accept(ctx, body, r.Header.Get("X-Signature"))
		if err != nil {
			switch {
			case errors.Is(err, ingestion.ErrInvalidSignature):
				writeError(w, http.StatusUnauthorized, err)
			case errors.Is(err, ingestion.ErrValidation):
				writeError(w, http.StatusBadRequest, err)
			case errors.Is(err, ingestion.ErrTransient):
				// the payload is spooled, the sender may retry or move on
				writeError(w, http.StatusServiceUnavailable, err)
			default:
				requestLogger.Error("uplink processing failed", "err", err.Error())
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJson(w, http.StatusOK, result)
	}
}

func querySpacesHandler(log *slog.Logger, spaces SpaceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeSpacesRead)

		ctx, span := tracer.Start(r.Context(), "query-spaces")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		conditions := []storage.ConditionFunc{storage.WithTenants(allowedTenants)}

		if siteID := r.URL.Query().Get("siteID"); siteID != "" {
			conditions = append(conditions, storage.WithSiteID(siteID))
		}
		if state := r.URL.Query().Get("state"); state != "" {
			conditions = append(conditions, storage.WithStates([]string{state}))
		}
		conditions = append(conditions, paging(r)...)

		collection, err := spaces.QuerySpaces(ctx, conditions...)
		if err != nil {
			requestLogger.Error("unable to query spaces", "err", err.Error())
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJson(w, http.StatusOK, newCollectionResponse(collection))
	}
}

func getSpaceHandler(log *slog.Logger, spaces SpaceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeSpacesRead)

		ctx, span := tracer.Start(r.Context(), "get-space")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		spaceID := chi.URLParam(r, "spaceID")

		space, err := spaces.GetSpace(ctx, storage.WithSpaceID(spaceID), storage.WithTenants(allowedTenants))
		if errors.Is(err, storage.ErrNoRows) {
			requestLogger.Debug("space not found", "space_id", spaceID)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			requestLogger.Error("unable to fetch space", "err", err.Error())
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: space})
	}
}

func checkAvailabilityHandler(log *slog.Logger, engine reservations.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeReservationsRead)

		ctx, span := tracer.Start(r.Context(), "check-availability")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		spaceID := chi.URLParam(r, "spaceID")

		start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start time: %s", err.Error()))
			return
		}
		end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid end time: %s", err.Error()))
			return
		}

		available, conflicts, err := engine.CheckAvailability(ctx, allowedTenants, spaceID, start, end)
		if err != nil {
			writeReservationError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusOK, availabilityResponse{
			SpaceID:   spaceID,
			StartTime: start,
			EndTime:   end,
			Available: available,
			Conflicts: conflicts,
		})
	}
}

func createReservationHandler(log *slog.Logger, engine reservations.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeReservations)

		ctx, span := tracer.Start(r.Context(), "create-reservation")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req createReservationRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %s", err.Error()))
			return
		}

		reservation, err := engine.Create(ctx, allowedTenants, req.SpaceID, req.StartTime, req.EndTime, req.IdempotencyKey)
		if err != nil {
			writeReservationError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusCreated, ApiResponse{Data: reservation})
	}
}

func queryReservationsHandler(log *slog.Logger, engine reservations.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeReservationsRead)

		ctx, span := tracer.Start(r.Context(), "query-reservations")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		conditions := []storage.ConditionFunc{}

		if spaceID := r.URL.Query().Get("spaceID"); spaceID != "" {
			conditions = append(conditions, storage.WithSpaceID(spaceID))
		}
		if status := r.URL.Query().Get("status"); status != "" {
			conditions = append(conditions, storage.WithReservationStatus(status))
		}
		conditions = append(conditions, paging(r)...)

		collection, err := engine.List(ctx, allowedTenants, conditions...)
		if err != nil {
			requestLogger.Error("unable to query reservations", "err", err.Error())
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJson(w, http.StatusOK, newCollectionResponse(collection))
	}
}

func getReservationHandler(log *slog.Logger, engine reservations.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeReservationsRead)

		ctx, span := tracer.Start(r.Context(), "get-reservation")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		reservation, err := engine.Get(ctx, allowedTenants, chi.URLParam(r, "reservationID"))
		if err != nil {
			writeReservationError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: reservation})
	}
}

func cancelReservationHandler(log *slog.Logger, engine reservations.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeReservations)

		ctx, span := tracer.Start(r.Context(), "cancel-reservation")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req cancelReservationRequest
		// the body is optional on cancel
		_ = json.NewDecoder(r.Body).Decode(&req)

		err = engine.Cancel(ctx, allowedTenants, chi.URLParam(r, "reservationID"), req.Reason)
		if err != nil {
			writeReservationError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func queueCommandHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeCommands)

		ctx, span := tracer.Start(r.Context(), "queue-command")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req queueCommandRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %s", err.Error()))
			return
		}

		commandID, err := dispatcher.QueueCommand(ctx, allowedTenants, req.DeviceID, req.CommandType, req.Payload, req.Priority, req.Confirmed)
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusCreated, queueCommandResponse{CommandID: commandID})
	}
}

func nextCommandHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "next-command")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		devEUI := r.URL.Query().Get("devEUI")
		if devEUI == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("devEUI parameter is required"))
			return
		}

		cmd, err := dispatcher.GetNextCommand(ctx, devEUI)
		if errors.Is(err, downlink.ErrNoCommands) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusOK, cmd)
	}
}

func commandSentHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "command-sent")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = dispatcher.MarkSent(ctx, chi.URLParam(r, "commandID"))
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func commandConfirmedHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "command-confirmed")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = dispatcher.MarkConfirmed(ctx, chi.URLParam(r, "commandID"))
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func commandFailedHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "command-failed")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		var req commandFailedRequest
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %s", err.Error()))
			return
		}

		err = dispatcher.MarkFailed(ctx, chi.URLParam(r, "commandID"), req.Error, req.Retry)
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func commandHistoryHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeCommands)

		ctx, span := tracer.Start(r.Context(), "command-history")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := r.URL.Query().Get("deviceID")
		if deviceID == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("deviceID parameter is required"))
			return
		}

		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, err = strconv.Atoi(l)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", err.Error()))
				return
			}
		}

		collection, err := dispatcher.History(ctx, deviceID, allowedTenants, limit)
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusOK, newCollectionResponse(collection))
	}
}

func clearQueueHandler(log *slog.Logger, dispatcher downlink.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeCommands)

		ctx, span := tracer.Start(r.Context(), "clear-queue")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := r.URL.Query().Get("deviceID")
		if deviceID == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("deviceID parameter is required"))
			return
		}

		cleared, err := dispatcher.Clear(ctx, deviceID, allowedTenants)
		if err != nil {
			writeCommandError(w, requestLogger, err)
			return
		}

		writeJson(w, http.StatusOK, clearQueueResponse{Cleared: cleared})
	}
}

func eventsHandler(events webevents.WebEvents) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.AnyScope)
		events.ServeWebsocket(w, r, allowedTenants)
	}
}

func writeReservationError(w http.ResponseWriter, log *slog.Logger, err error) {
	var conflict *reservations.ConflictError
	if errors.As(err, &conflict) {
		writeJsonError(w, http.StatusConflict, errorResponse{Error: conflict.Error(), Conflicts: conflict.Conflicts})
		return
	}

	switch {
	case errors.Is(err, reservations.ErrInvalidWindow), errors.Is(err, reservations.ErrNotActive):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, reservations.ErrNotAllowed):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, reservations.ErrReservationNotFound), errors.Is(err, reservations.ErrSpaceNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		log.Error("reservation operation failed", "err", err.Error())
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeCommandError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, downlink.ErrNotAllowed):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, downlink.ErrCommandNotFound), errors.Is(err, downlink.ErrDeviceNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		log.Error("command operation failed", "err", err.Error())
		writeError(w, http.StatusInternalServerError, err)
	}
}

func paging(r *http.Request) []storage.ConditionFunc {
	conditions := []storage.ConditionFunc{}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			conditions = append(conditions, storage.WithOffset(v))
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			conditions = append(conditions, storage.WithLimit(v))
		}
	}
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		conditions = append(conditions, storage.WithSortBy(sortBy))
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder == "desc" {
		conditions = append(conditions, storage.WithSortDesc(true))
	}

	return conditions
}

func writeJson(w http.ResponseWriter, statusCode int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(b)
}

func writeJsonError(w http.ResponseWriter, statusCode int, resp errorResponse) {
	writeJson(w, statusCode, resp)
}

func writeError(w http.ResponseWriter, statusCode int, err error) {
	writeJson(w, statusCode, errorResponse{Error: err.Error()})
}
