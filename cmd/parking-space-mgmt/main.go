package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/display"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/downlink"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/ingestion"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/occupancy"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/provisioning"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/reservations"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/scheduler"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/webevents"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/router"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/spool"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/presentation/api"
)

const serviceName string = "parking-space-mgmt"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	policiesFile
	displayConfigFile
	spacesFile

	spoolDir
	spoolMaxAttempts
	webhookSecret

	allowedSeedTenants
	deviceUnseenTimeout
	readingRetention
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		policiesFile:      "/opt/curbsense/config/authz.rego",
		displayConfigFile: "/opt/curbsense/config/display.yaml",
		spacesFile:        "",

		spoolDir:         "/opt/curbsense/spool",
		spoolMaxAttempts: "5",
		webhookSecret:    "",

		allowedSeedTenants:  "default",
		deviceUnseenTimeout: "6h",
		readingRetention:    "2160h",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	displayCfg, err := os.Open(flags[displayConfigFile])
	exitIf(err, logger, "could not open display configuration file")

	var spaces io.ReadCloser
	if flags[spacesFile] != "" {
		spaces, err = os.Open(flags[spacesFile])
		exitIf(err, logger, "could not open spaces file")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, flags, policies, displayCfg, spaces)
	exitIf(err, logger, "service failed")
}

func run(ctx context.Context, flags flagMap, policies, displayCfg io.ReadCloser, spaces io.ReadCloser) error {
	log := logging.GetFromContext(ctx)

	defer policies.Close()

	s, err := storage.New(ctx, storage.LoadConfiguration(ctx))
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer s.Close()

	err = s.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}

	if spaces != nil {
		err = provisioning.Seed(ctx, s, spaces, strings.Split(flags[allowedSeedTenants], ","))
		if err != nil {
			return fmt.Errorf("could not seed spaces: %w", err)
		}
	}

	displayConfig, err := display.NewConfig(displayCfg)
	displayCfg.Close()
	if err != nil {
		return fmt.Errorf("could not parse display configuration: %w", err)
	}

	maxAttempts, err := strconv.Atoi(flags[spoolMaxAttempts])
	if err != nil {
		return fmt.Errorf("invalid spool max attempts: %w", err)
	}

	queue, err := spool.New(flags[spoolDir], maxAttempts)
	if err != nil {
		return fmt.Errorf("could not open spool directory: %w", err)
	}

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	if err != nil {
		return fmt.Errorf("failed to init messenger: %w", err)
	}
	defer messenger.Close()

	resolver := display.NewResolver(displayConfig)
	dispatcher := downlink.New(s)
	reconciler := occupancy.New(s, resolver, dispatcher, messenger)
	engine := reservations.New(s, reconciler, resolver, dispatcher, messenger)
	gate := ingestion.New(s, reconciler, queue, messenger, flags[webhookSecret], nil)
	events := webevents.New(messenger)

	messenger.Start()

	err = events.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to register topic message handlers: %w", err)
	}
	defer events.Shutdown(context.Background())

	jobs, err := registerJobs(flags, s, engine, gate)
	if err != nil {
		return err
	}

	jobs.Start(ctx)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		err := jobs.Stop(stopCtx)
		if err != nil {
			log.Error("scheduler did not drain cleanly", "err", err.Error())
		}
	}()

	r := router.New(serviceName)
	_, err = api.RegisterHandlers(ctx, r, policies, gate, engine, dispatcher, s, events)
	if err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	apiPort := fmt.Sprintf("%s:%s", flags[listenAddress], flags[servicePort])

	server := &http.Server{Addr: apiPort, Handler: r}

	errChan := make(chan error, 1)
	go func() {
		log.Info("starting to listen for incoming connections", "address", apiPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err = <-errChan:
		return fmt.Errorf("web server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func registerJobs(flags flagMap, s *storage.Storage, engine reservations.Engine, gate ingestion.Gate) (*scheduler.Scheduler, error) {
	unseenTimeout, err := time.ParseDuration(flags[deviceUnseenTimeout])
	if err != nil {
		return nil, fmt.Errorf("invalid device unseen timeout: %w", err)
	}

	retention, err := time.ParseDuration(flags[readingRetention])
	if err != nil {
		return nil, fmt.Errorf("invalid reading retention: %w", err)
	}

	jobs := scheduler.New()

	err = jobs.Register("expire-reservations", time.Minute, func(ctx context.Context) error {
		return engine.ExpireSweep(ctx)
	})
	if err != nil {
		return nil, err
	}

	err = jobs.Register("retry-spooled-uplinks", time.Minute, func(ctx context.Context) error {
		return gate.ProcessSpool(ctx)
	})
	if err != nil {
		return nil, err
	}

	err = jobs.Register("deactivate-unseen-devices", 5*time.Minute, func(ctx context.Context) error {
		count, err := s.DeactivateUnseenDevices(ctx, unseenTimeout)
		if err != nil {
			return err
		}
		if count > 0 {
			logging.GetFromContext(ctx).Info("deactivated silent devices", slog.Int64("count", count))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = jobs.Register("reading-retention", 24*time.Hour, func(ctx context.Context) error {
		_, err := s.DeleteReadingsBefore(ctx, time.Now().UTC().Add(-retention))
		return err
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[allowedSeedTenants] = envOrDef(ctx, "ALLOWED_SEED_TENANTS", flags[allowedSeedTenants])

	flags[spoolDir] = envOrDef(ctx, "SPOOL_DIR", flags[spoolDir])
	flags[spoolMaxAttempts] = envOrDef(ctx, "SPOOL_MAX_ATTEMPTS", flags[spoolMaxAttempts])
	flags[webhookSecret] = envOrDef(ctx, "WEBHOOK_SECRET", flags[webhookSecret])

	flags[deviceUnseenTimeout] = envOrDef(ctx, "DEVICE_UNSEEN_TIMEOUT", flags[deviceUnseenTimeout])
	flags[readingRetention] = envOrDef(ctx, "READING_RETENTION", flags[readingRetention])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("displays", "display policy configuration file", apply(displayConfigFile))
	flag.Func("spaces", "list of known spaces and devices to seed", apply(spacesFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
