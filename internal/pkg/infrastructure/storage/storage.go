package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "parking"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows        = errors.New("no rows in result set")
	ErrTooManyRows   = errors.New("too many rows in result set")
	ErrStoreFailed   = errors.New("could not store data")
	ErrNoID          = errors.New("data contains no id")
	ErrMissingTenant = errors.New("missing tenant information")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflicting row exists")
	ErrNotUpdated    = errors.New("no rows were updated")
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists
		case pgExclusionViolation:
			return ErrConflict
		}
	}

	return err
}

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Storage) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS btree_gist;

		CREATE TABLE IF NOT EXISTS devices (
			device_id	TEXT	NOT NULL,
			dev_eui		TEXT	NOT NULL,
			kind		TEXT	NOT NULL DEFAULT 'sensor',
			status		TEXT	NOT NULL DEFAULT 'provisioned',
			tenant		TEXT	NOT NULL,
			space_id	TEXT	NULL,
			last_seen	timestamp with time zone NULL,
			last_fcnt	BIGINT	NOT NULL DEFAULT -1,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_devices PRIMARY KEY (device_id),
			CONSTRAINT devices_dev_eui_unique UNIQUE (dev_eui)
		);

		CREATE TABLE IF NOT EXISTS spaces (
			space_id	TEXT	NOT NULL,
			tenant		TEXT	NOT NULL,
			site_id		TEXT	NULL,
			code		TEXT	NOT NULL,
			name		TEXT	NULL,
			enabled		BOOLEAN	NOT NULL DEFAULT TRUE,
			current_state		TEXT	NOT NULL DEFAULT 'unknown',
			sensor_state		TEXT	NULL,
			display_state		TEXT	NULL,
			state_changed_at	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			sensor_device_id	TEXT	NULL,
			display_device_id	TEXT	NULL,
			policy		JSONB	NULL,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_spaces PRIMARY KEY (space_id)
		);

		CREATE TABLE IF NOT EXISTS reservations (
			reservation_id	TEXT	NOT NULL,
			tenant		TEXT	NOT NULL,
			space_id	TEXT	NOT NULL,
			start_time	timestamp with time zone NOT NULL,
			end_time	timestamp with time zone NOT NULL,
			status		TEXT	NOT NULL DEFAULT 'active',
			idempotency_key	TEXT	NULL,
			checked_in	BOOLEAN	NOT NULL DEFAULT FALSE,
			cancelled_at	timestamp with time zone NULL,
			cancel_reason	TEXT	NULL,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_reservations PRIMARY KEY (reservation_id),
			CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
				space_id WITH =,
				tstzrange(start_time, end_time) WITH &&
			) WHERE (status = 'active')
		);

		CREATE UNIQUE INDEX IF NOT EXISTS reservations_idempotency_idx
			ON reservations (tenant, idempotency_key)
			WHERE idempotency_key IS NOT NULL;

		CREATE TABLE IF NOT EXISTS sensor_readings (
			reading_id	TEXT	NOT NULL,
			tenant		TEXT	NOT NULL,
			device_id	TEXT	NOT NULL,
			dev_eui		TEXT	NOT NULL,
			fcnt		BIGINT	NOT NULL,
			occupied	BOOLEAN	NOT NULL,
			rssi		NUMERIC	NULL,
			snr			NUMERIC	NULL,
			payload		JSONB	NULL,
			received_at	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_sensor_readings PRIMARY KEY (reading_id)
		);

		CREATE INDEX IF NOT EXISTS sensor_readings_dev_eui_idx ON sensor_readings (dev_eui, fcnt DESC);
		CREATE INDEX IF NOT EXISTS sensor_readings_received_at_idx ON sensor_readings (received_at);

		CREATE TABLE IF NOT EXISTS downlink_queue (
			command_id	TEXT	NOT NULL,
			tenant		TEXT	NOT NULL,
			device_id	TEXT	NOT NULL,
			dev_eui		TEXT	NOT NULL,
			command_type	TEXT	NOT NULL,
			payload		JSONB	NOT NULL,
			priority	INT		NOT NULL DEFAULT 5,
			confirmed	BOOLEAN	NOT NULL DEFAULT FALSE,
			status		TEXT	NOT NULL DEFAULT 'queued',
			retry_count	INT		NOT NULL DEFAULT 0,
			last_error	TEXT	NULL,
			sent_at		timestamp with time zone NULL,
			confirmed_at	timestamp with time zone NULL,
			created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_downlink_queue PRIMARY KEY (command_id)
		);

		CREATE INDEX IF NOT EXISTS downlink_queue_next_idx ON downlink_queue (dev_eui, priority, created_on) WHERE status = 'queued';

		CREATE TABLE IF NOT EXISTS orphan_devices (
			dev_eui		TEXT	NOT NULL,
			first_seen	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_seen	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			message_count	BIGINT	NOT NULL DEFAULT 1,
			last_payload	JSONB	NULL,
			CONSTRAINT pkey_orphan_devices PRIMARY KEY (dev_eui)
		);

		CREATE INDEX IF NOT EXISTS spaces_tenant_idx ON spaces (tenant);
		CREATE INDEX IF NOT EXISTS reservations_space_status_idx ON reservations (space_id, status);
		CREATE INDEX IF NOT EXISTS reservations_status_end_idx ON reservations (end_time) WHERE status = 'active';
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
