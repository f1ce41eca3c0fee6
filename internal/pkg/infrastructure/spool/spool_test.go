package spool

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestEnqueueDequeueAck(t *testing.T) {
	is, ctx, q := testSetup(t)

	err := q.Enqueue(ctx, []byte(`{"a":1}`))
	is.NoErr(err)

	e, err := q.Dequeue(ctx)
	is.NoErr(err)
	is.Equal(string(e.Payload), `{"a":1}`)
	is.Equal(e.Attempts, 0)

	err = q.Ack(ctx, e)
	is.NoErr(err)

	_, err = q.Dequeue(ctx)
	is.True(errors.Is(err, ErrEmpty))
}

func TestDequeueOrderIsOldestFirst(t *testing.T) {
	is, ctx, q := testSetup(t)

	is.NoErr(q.Enqueue(ctx, []byte("first")))
	is.NoErr(q.Enqueue(ctx, []byte("second")))

	e, err := q.Dequeue(ctx)
	is.NoErr(err)
	is.Equal(string(e.Payload), "first")
}

func TestInflightEntriesAreNotDequeuedTwice(t *testing.T) {
	is, ctx, q := testSetup(t)

	is.NoErr(q.Enqueue(ctx, []byte("only")))

	_, err := q.Dequeue(ctx)
	is.NoErr(err)

	_, err = q.Dequeue(ctx)
	is.True(errors.Is(err, ErrEmpty))
}

func TestFailIncrementsAttemptsUntilExhausted(t *testing.T) {
	is, ctx, q := testSetup(t)

	is.NoErr(q.Enqueue(ctx, []byte("flaky")))

	for attempt := 0; attempt < 3; attempt++ {
		e, err := q.Dequeue(ctx)
		is.NoErr(err)
		is.Equal(e.Attempts, attempt)
		is.NoErr(q.Fail(ctx, e))
	}

	_, err := q.Dequeue(ctx)
	is.True(errors.Is(err, ErrEmpty))
}

func TestFailedEntryCanBeRetried(t *testing.T) {
	is, ctx, q := testSetup(t)

	is.NoErr(q.Enqueue(ctx, []byte("retry me")))

	e, err := q.Dequeue(ctx)
	is.NoErr(err)
	is.NoErr(q.Fail(ctx, e))

	e, err = q.Dequeue(ctx)
	is.NoErr(err)
	is.Equal(string(e.Payload), "retry me")
	is.Equal(e.Attempts, 1)
}

func testSetup(t *testing.T) (*is.I, context.Context, Queue) {
	is := is.New(t)
	q, err := New(t.TempDir(), 3)
	is.NoErr(err)
	return is, context.Background(), q
}
