package repository

import (
	"context"
	"os"
	"testing"

	"gestionrecursos/internal/shared"
	"gestionrecursos/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresGet(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT data FROM documents WHERE collection = \$1 AND id = \$2`).
		WithArgs("empleados", "doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"nombre":"Ana","owner":"a@x.com"}`)))

	data, err := store.Get(context.Background(), "empleados", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", data["nombre"])
	assert.Equal(t, "a@x.com", data["owner"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetNotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT data FROM documents WHERE collection = \$1 AND id = \$2`).
		WithArgs("empleados", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := store.Get(context.Background(), "empleados", "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT id, data FROM documents WHERE collection = \$1`).
		WithArgs("productos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).
			AddRow("doc-1", []byte(`{"nombre":"Teclado","owner":"a@x.com"}`)).
			AddRow("doc-2", []byte(`{"nombre":"Mouse","owner":"b@x.com"}`)))

	docs, err := store.List(context.Background(), "productos")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "Teclado", docs[0].Data["nombre"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateAllocatesID(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`INSERT INTO documents \(collection, id, data\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("empleados", sqlmock.AnyArg(), []byte(`{"nombre":"Ana","owner":"a@x.com"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Create(context.Background(), "empleados", map[string]any{
		"nombre": "Ana",
		"owner":  "a@x.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetOwned(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`UPDATE documents SET data = \$1 WHERE collection = \$2 AND id = \$3 AND data->>'owner' = \$4`).
		WithArgs([]byte(`{"nombre":"Ana","owner":"a@x.com"}`), "empleados", "doc-1", "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := store.SetOwned(context.Background(), "empleados", "doc-1", "a@x.com", map[string]any{
		"nombre": "Ana",
		"owner":  "a@x.com",
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetOwnedMismatch(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`UPDATE documents SET data = \$1`).
		WithArgs(sqlmock.AnyArg(), "empleados", "doc-1", "b@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.SetOwned(context.Background(), "empleados", "doc-1", "b@x.com", map[string]any{
		"owner": "b@x.com",
	})
	require.NoError(t, err)
	assert.False(t, ok, "conditional write must not apply when the stored owner differs")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteOwned(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`DELETE FROM documents WHERE collection = \$1 AND id = \$2 AND data->>'owner' = \$3`).
		WithArgs("empleados", "doc-1", "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := store.DeleteOwned(context.Background(), "empleados", "doc-1", "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteOwnedMismatch(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs("empleados", "doc-1", "b@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.DeleteOwned(context.Background(), "empleados", "doc-1", "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStoreConditionalWrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "empleados", map[string]any{"nombre": "Ana", "owner": "a@x.com"})
	require.NoError(t, err)

	ok, err := store.SetOwned(ctx, "empleados", id, "b@x.com", map[string]any{"owner": "b@x.com"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.DeleteOwned(ctx, "empleados", id, "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.DeleteOwned(ctx, "empleados", id, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Get(ctx, "empleados", id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
