package stringer

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier keeps the arguments of the last Exec and fails every read.
type recordingQuerier struct {
	execArgs []any
	execErr  error
	rowErr   error
}

func (q *recordingQuerier) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	q.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.rowErr
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{q.rowErr}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestEncodeSchedule(t *testing.T) {
	services, availability, err := encodeSchedule(DefaultSettings("s1"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Standard Restring","price_cents":2500},{"name":"Premium String","price_cents":3500}]`, string(services))
	assert.Equal(t, "[]", string(availability))

	_, availability, err = encodeSchedule(&Settings{Availability: []AvailabilityBlock{{DayOfWeek: 1, Start: "09:00", End: "17:00"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"dow":1,"start":"09:00","end":"17:00"}]`, string(availability))
}

func TestInsertDefaultsWritesEncodedSchedule(t *testing.T) {
	q := &recordingQuerier{rowErr: pgx.ErrNoRows}
	_, err := InsertDefaults(context.Background(), q, "s1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	require.Len(t, q.execArgs, 8)
	assert.Equal(t, "s1", q.execArgs[0])
	assert.JSONEq(t, `[{"name":"Standard Restring","price_cents":2500},{"name":"Premium String","price_cents":3500}]`,
		string(q.execArgs[6].([]byte)))
	assert.Equal(t, "[]", string(q.execArgs[7].([]byte)))
}

func TestInsertDefaultsReturnsExecError(t *testing.T) {
	boom := errors.New("boom")
	_, err := InsertDefaults(context.Background(), &recordingQuerier{execErr: boom}, "s1")
	assert.ErrorIs(t, err, boom)
}
