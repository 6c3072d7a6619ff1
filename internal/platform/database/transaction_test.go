package database

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	return NewDatabaseInstance(sqlx.NewDb(raw, "sqlmock"), testLogger()), mock
}

func TestRollbackReachesDriver(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx, tx, err := db.GetTx(context.Background(), &sql.TxOptions{})
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))
	assert.False(t, tx.IsOpen())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeferredRollbackRunsOnErrorPath(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE contacts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Mirrors the repository shape: begin, exec, bail out before commit with
	// only the deferred rollback standing between us and a leaked connection.
	err := func() error {
		ctx, tx, err := db.GetTx(context.Background(), &sql.TxOptions{})
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := tx.ExecContext(ctx, "UPDATE contacts SET note = $1 WHERE id = $2", "n", "c1"); err != nil {
			return err
		}
		return assert.AnError
	}()

	require.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTxReusesOpenTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx, owner, err := db.GetTx(context.Background(), &sql.TxOptions{})
	require.NoError(t, err)

	// A second GetTx on the stamped context joins the same transaction; its
	// close calls are no-ops so the owner stays in charge.
	_, nested, err := db.GetTx(ctx, &sql.TxOptions{})
	require.NoError(t, err)

	require.NoError(t, nested.Rollback(ctx))
	require.NoError(t, nested.Commit(ctx))
	assert.True(t, owner.IsOpen())

	require.NoError(t, owner.Rollback(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackAfterCommitIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	ctx, tx, err := db.GetTx(context.Background(), &sql.TxOptions{})
	require.NoError(t, err)

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTxBeginsFreshAfterClose(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	ctx, first, err := db.GetTx(context.Background(), &sql.TxOptions{})
	require.NoError(t, err)
	require.NoError(t, first.Rollback(ctx))

	ctx, second, err := db.GetTx(ctx, &sql.TxOptions{})
	require.NoError(t, err)
	assert.True(t, second.IsOpen())

	require.NoError(t, second.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
