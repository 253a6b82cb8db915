package doctor

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

// fakeExecutor запоминает последний запрос; Query* отдают только ошибку
type fakeExecutor struct {
	result   sql.Result
	execErr  error
	queryErr error

	calls int
	query string
	args  []interface{}
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls++
	f.query, f.args = query, args
	if f.execErr != nil {
		return nil, f.execErr
	}
	return f.result, nil
}

func (f *fakeExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	f.calls++
	f.query, f.args = query, args
	return nil, f.queryErr
}

func (f *fakeExecutor) QueryRowContext(_ context.Context, query string, args ...interface{}) *sql.Row {
	panic("QueryRowContext is not supported by fakeExecutor")
}

type fakeTx struct {
	fakeExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestDeleteWindow(t *testing.T) {
	tests := []struct {
		name    string
		db      *fakeExecutor
		wantErr error
	}{
		{name: "deleted", db: &fakeExecutor{result: fakeResult{rows: 1}}},
		{name: "no such window", db: &fakeExecutor{result: fakeResult{rows: 0}}, wantErr: ErrWindowNotFound},
		{name: "exec failure", db: &fakeExecutor{execErr: errors.New("connection reset")}, wantErr: ErrExecQuery},
		{name: "rows affected failure", db: &fakeExecutor{result: fakeResult{err: errors.New("driver")}}, wantErr: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(tt.db)

			err := repo.DeleteWindow(context.Background(), 4, 9)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "DELETE FROM availability_windows WHERE doctor_id = $1 AND id = $2", tt.db.query)
			assert.Equal(t, []interface{}{int64(4), int64(9)}, tt.db.args)
		})
	}
}

func TestDeleteWindow_UsesTransactionFromContext(t *testing.T) {
	db := &fakeExecutor{result: fakeResult{rows: 1}}
	tx := &fakeTx{fakeExecutor: fakeExecutor{result: fakeResult{rows: 1}}}
	ctx := dbmetrics.WithTx(context.Background(), tx)

	err := NewRepository(db).DeleteWindow(ctx, 4, 9)

	require.NoError(t, err)
	assert.Equal(t, 0, db.calls)
	assert.Equal(t, 1, tx.calls)
}

func TestListWindows_NoDoctorsSkipsQuery(t *testing.T) {
	db := &fakeExecutor{}

	windows, err := NewRepository(db).ListWindows(context.Background(), nil, 1)

	require.NoError(t, err)
	assert.NotNil(t, windows)
	assert.Empty(t, windows)
	assert.Equal(t, 0, db.calls)
}

func TestListWindows_QueryFailure(t *testing.T) {
	db := &fakeExecutor{queryErr: errors.New("connection refused")}

	_, err := NewRepository(db).ListWindows(context.Background(), []int64{1, 2}, 3)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.Contains(t, db.query, "FROM availability_windows")
	assert.Contains(t, db.query, "doctor_id IN ($2,$3)")
	assert.Contains(t, db.query, "ORDER BY start_time ASC, doctor_id ASC")
	assert.Equal(t, []interface{}{true, int64(1), int64(2), 3}, db.args)
}

func TestListActiveBySpecialty_QueryFailure(t *testing.T) {
	db := &fakeExecutor{queryErr: errors.New("connection refused")}

	_, err := NewRepository(db).ListActiveBySpecialty(context.Background(), 7)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.Contains(t, db.query, "d.active = $1")
	assert.Contains(t, db.query, "x.specialty_id = $2")
	assert.Equal(t, []interface{}{true, int64(7)}, db.args)
}

func TestDoctorsSelect(t *testing.T) {
	query, args, err := doctorsSelect().ToSql()

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "array_agg(ds.specialty_id ORDER BY ds.specialty_id)")
	assert.Contains(t, query, "FROM doctors d LEFT JOIN doctor_specialties ds ON ds.doctor_id = d.id")
	assert.Contains(t, query, "GROUP BY d.id")
}

type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *pq.Int64Array:
			*p = r.values[i].(pq.Int64Array)
		}
	}
	return nil
}

func TestScanDoctor(t *testing.T) {
	doc, err := scanDoctor(fakeRow{values: []interface{}{int64(5), "Ana", "Pérez", true, pq.Int64Array{3, 7}}})

	require.NoError(t, err)
	assert.Equal(t, int64(5), doc.ID)
	assert.Equal(t, "Ana Pérez", doc.FullName())
	assert.True(t, doc.Active)
	assert.Equal(t, []int64{3, 7}, doc.SpecialtyIDs)
	assert.True(t, doc.HasSpecialty(7))

	_, err = scanDoctor(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
