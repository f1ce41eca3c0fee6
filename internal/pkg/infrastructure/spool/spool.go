package spool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrEmpty = errors.New("spool is empty")

// Entry is a spooled payload together with its delivery bookkeeping.
type Entry struct {
	ID       string
	Payload  []byte
	Attempts int
}

// Queue is a durable buffer for payloads that have been accepted but
// not yet fully processed. Dequeued entries stay in the queue until
// they are acked, so a crash between dequeue and ack replays them.
type Queue interface {
	Enqueue(ctx context.Context, payload []byte) error
	Dequeue(ctx context.Context) (Entry, error)
	Ack(ctx context.Context, e Entry) error
	Fail(ctx context.Context, e Entry) error
}

type fileQueue struct {
	dir         string
	maxAttempts int

	inflight map[string]struct{}
}

func New(dir string, maxAttempts int) (Queue, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("could not create spool directory: %w", err)
	}

	return &fileQueue{
		dir:         dir,
		maxAttempts: maxAttempts,
		inflight:    map[string]struct{}{},
	}, nil
}

// Enqueue writes the payload to a temp file and renames it into place,
// so readers never observe a partially written entry.
func (q *fileQueue) Enqueue(ctx context.Context, payload []byte) error {
	name := entryName(time.Now().UTC(), uuid.NewString(), 0)

	tmp := filepath.Join(q.dir, name+".tmp")
	err := os.WriteFile(tmp, payload, 0o644)
	if err != nil {
		return fmt.Errorf("could not write spool entry: %w", err)
	}

	err = os.Rename(tmp, filepath.Join(q.dir, name))
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not commit spool entry: %w", err)
	}

	return nil
}

func (q *fileQueue) Dequeue(ctx context.Context) (Entry, error) {
	names, err := q.pending()
	if err != nil {
		return Entry{}, err
	}

	log := logging.GetFromContext(ctx)

	for _, name := range names {
		if _, taken := q.inflight[name]; taken {
			continue
		}

		attempts, ok := entryAttempts(name)
		if !ok {
			log.Warn("skipping malformed spool entry", "entry", name)
			continue
		}
		if attempts >= q.maxAttempts {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(q.dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Entry{}, err
		}

		q.inflight[name] = struct{}{}
		return Entry{ID: name, Payload: payload, Attempts: attempts}, nil
	}

	return Entry{}, ErrEmpty
}

func (q *fileQueue) Ack(ctx context.Context, e Entry) error {
	delete(q.inflight, e.ID)
	err := os.Remove(filepath.Join(q.dir, e.ID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Fail records another attempt by renaming the entry. Entries that have
// used up their attempts stay on disk for inspection but are no longer
// dequeued.
func (q *fileQueue) Fail(ctx context.Context, e Entry) error {
	delete(q.inflight, e.ID)

	idx := strings.LastIndex(e.ID, "-")
	if idx < 0 {
		return fmt.Errorf("malformed spool entry id %s", e.ID)
	}

	name := fmt.Sprintf("%s-%d", e.ID[:idx], e.Attempts+1)
	err := os.Rename(filepath.Join(q.dir, e.ID), filepath.Join(q.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (q *fileQueue) pending() ([]string, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		names = append(names, e.Name())
	}

	sort.Strings(names)
	return names, nil
}

func entryName(t time.Time, id string, attempts int) string {
	return fmt.Sprintf("%020d-%s-%d", t.UnixNano(), id, attempts)
}

func entryAttempts(name string) (int, bool) {
	idx := strings.LastIndex(name, "-")
	if idx < 0 {
		return 0, false
	}
	attempts, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0, false
	}
	return attempts, true
}
