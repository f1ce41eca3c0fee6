package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddCommand(ctx context.Context, cmd types.DownlinkCommand) error {
	if cmd.Tenant == "" {
		return ErrMissingTenant
	}
	if cmd.CommandID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"command_id":   cmd.CommandID,
		"tenant":       cmd.Tenant,
		"device_id":    cmd.DeviceID,
		"dev_eui":      strings.ToUpper(cmd.DevEUI),
		"command_type": cmd.CommandType,
		"payload":      string(cmd.Payload),
		"priority":     cmd.Priority,
		"confirmed":    cmd.Confirmed,
		"status":       string(types.CommandQueued),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO downlink_queue (command_id, tenant, device_id, dev_eui, command_type, payload, priority, confirmed, status)
		VALUES (@command_id, @tenant, @device_id, @dev_eui, @command_type, @payload, @priority, @confirmed, @status)
	`, args)

	return mapPgError(err)
}

// NextCommand claims the next queued command for a device: lowest
// priority number first, oldest first within a tier. Claiming and the
// transition to pending happen in one statement so concurrent pollers
// cannot hand out the same command twice; SKIP LOCKED lets them pass
// each other instead of queueing up.
func (s *Storage) NextCommand(ctx context.Context, devEUI string, sentAt time.Time) (types.DownlinkCommand, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE downlink_queue
		SET status = @pending, sent_at = @sent_at, modified_on = CURRENT_TIMESTAMP
		WHERE command_id = (
			SELECT command_id FROM downlink_queue
			WHERE dev_eui = @dev_eui AND status = @queued
			ORDER BY priority ASC, created_on ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING command_id, tenant, device_id, dev_eui, command_type, payload, priority, confirmed, status, retry_count, last_error, created_on, sent_at, confirmed_at
	`, pgx.NamedArgs{
		"dev_eui": strings.ToUpper(devEUI),
		"queued":  string(types.CommandQueued),
		"pending": string(types.CommandPending),
		"sent_at": sentAt.UTC(),
	})

	cmd, err := scanCommand(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DownlinkCommand{}, ErrNoRows
		}
		return types.DownlinkCommand{}, err
	}

	return cmd, nil
}

func (s *Storage) GetCommandByID(ctx context.Context, commandID string) (types.DownlinkCommand, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT command_id, tenant, device_id, dev_eui, command_type, payload, priority, confirmed, status, retry_count, last_error, created_on, sent_at, confirmed_at
		FROM downlink_queue
		WHERE command_id = @command_id
	`, pgx.NamedArgs{"command_id": commandID})

	cmd, err := scanCommand(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DownlinkCommand{}, ErrNoRows
		}
		return types.DownlinkCommand{}, err
	}

	return cmd, nil
}

func (s *Storage) MarkCommandSent(ctx context.Context, commandID string, sentAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE downlink_queue
		SET status = @sent, sent_at = @sent_at, modified_on = CURRENT_TIMESTAMP
		WHERE command_id = @command_id AND status = @pending
	`, pgx.NamedArgs{
		"command_id": commandID,
		"sent":       string(types.CommandSent),
		"pending":    string(types.CommandPending),
		"sent_at":    sentAt.UTC(),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

func (s *Storage) MarkCommandConfirmed(ctx context.Context, commandID string, confirmedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE downlink_queue
		SET status = @confirmed, confirmed_at = @confirmed_at, modified_on = CURRENT_TIMESTAMP
		WHERE command_id = @command_id AND status IN (@pending, @sent)
	`, pgx.NamedArgs{
		"command_id":   commandID,
		"confirmed":    string(types.CommandConfirmed),
		"pending":      string(types.CommandPending),
		"sent":         string(types.CommandSent),
		"confirmed_at": confirmedAt.UTC(),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

// RequeueCommand puts a failed command back on the queue, keeping its
// original created_on so a retried command does not lose its place to
// newer commands of equal priority.
func (s *Storage) RequeueCommand(ctx context.Context, commandID string, retryCount int, lastError string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE downlink_queue
		SET status = @queued, retry_count = @retry_count, last_error = @last_error, modified_on = CURRENT_TIMESTAMP
		WHERE command_id = @command_id
	`, pgx.NamedArgs{
		"command_id":  commandID,
		"queued":      string(types.CommandQueued),
		"retry_count": retryCount,
		"last_error":  lastError,
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

func (s *Storage) FailCommand(ctx context.Context, commandID string, retryCount int, lastError string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE downlink_queue
		SET status = @failed, retry_count = @retry_count, last_error = @last_error, modified_on = CURRENT_TIMESTAMP
		WHERE command_id = @command_id
	`, pgx.NamedArgs{
		"command_id":  commandID,
		"failed":      string(types.CommandFailed),
		"retry_count": retryCount,
		"last_error":  lastError,
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotUpdated
	}

	return nil
}

func (s *Storage) QueryCommands(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.DownlinkCommand], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "created_on"
		condition.sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT command_id, tenant, device_id, dev_eui, command_type, payload, priority, confirmed, status, retry_count, last_error, created_on, sent_at, confirmed_at, count(*) OVER () AS total
		FROM downlink_queue
		WHERE %s
		ORDER BY %s %s
		%s
	`, condition.Where(), condition.SortBy(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.DownlinkCommand]{}, err
	}
	defer rows.Close()

	var total int64
	commands := make([]types.DownlinkCommand, 0)

	for rows.Next() {
		cmd, err := scanCommand(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return types.Collection[types.DownlinkCommand]{}, err
		}
		commands = append(commands, cmd)
	}
	if rows.Err() != nil {
		return types.Collection[types.DownlinkCommand]{}, rows.Err()
	}

	return types.Collection[types.DownlinkCommand]{
		Data:       commands,
		Count:      uint64(len(commands)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(total),
	}, nil
}

// ClearQueue drops all queued and pending commands for a device.
func (s *Storage) ClearQueue(ctx context.Context, deviceID, tenant string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM downlink_queue
		WHERE device_id = @device_id AND tenant = @tenant AND status IN (@queued, @pending)
	`, pgx.NamedArgs{
		"device_id": deviceID,
		"tenant":    tenant,
		"queued":    string(types.CommandQueued),
		"pending":   string(types.CommandPending),
	})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanCommand(scan func(dest ...any) error) (types.DownlinkCommand, error) {
	var cmd types.DownlinkCommand
	var lastError *string
	var sentAt, confirmedAt *time.Time

	err := scan(&cmd.CommandID, &cmd.Tenant, &cmd.DeviceID, &cmd.DevEUI, &cmd.CommandType, &cmd.Payload,
		&cmd.Priority, &cmd.Confirmed, &cmd.Status, &cmd.RetryCount, &lastError, &cmd.CreatedAt, &sentAt, &confirmedAt)
	if err != nil {
		return types.DownlinkCommand{}, err
	}

	if lastError != nil {
		cmd.LastError = *lastError
	}
	cmd.SentAt = sentAt
	cmd.ConfirmedAt = confirmedAt

	return cmd, nil
}
