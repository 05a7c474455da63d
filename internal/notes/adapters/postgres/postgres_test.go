package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevennote/internal/notes/adapters/postgres"
	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/ports/repositories"
	"elevennote/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

var noteColumns = []string{"id", "owner_id", "title", "content", "is_starred", "created_utc", "modified_utc"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNewNoteRepository(t *testing.T) {
	repo := postgres.NewNoteRepository(newMock(t))

	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
	_, ok := repo.(*postgres.NoteRepository)
	assert.True(t, ok)
}

func TestRepositoryFactory(t *testing.T) {
	factory := postgres.NewRepositoryFactory(newMock(t))
	assert.NotNil(t, factory.NoteRepository())
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note := entities.NewNote("note-1", "owner-1", "Title", "Body", created)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("INSERT INTO notes").
			WithArgs("note-1", "owner-1", "Title", "Body", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := postgres.NewNoteRepository(mock).Create(ctx, note)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("INSERT INTO notes").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).Create(ctx, note)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrCreateNote)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	modified := created.Add(time.Minute)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, owner_id, title, content, is_starred, created_utc, modified_utc FROM notes WHERE id = \\$1 AND owner_id = \\$2").
			WithArgs("note-1", "owner-1").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("note-1", "owner-1", "Title", "Body", true, created, &modified))

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, "note-1", "owner-1")

		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, "Title", note.Title)
		assert.True(t, note.IsStarred)
		require.NotNil(t, note.ModifiedUtc)
		assert.True(t, note.ModifiedUtc.Equal(modified))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("never modified", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE id").
			WithArgs("note-1", "owner-1").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("note-1", "owner-1", "Title", "Body", false, created, (*time.Time)(nil)))

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, "note-1", "owner-1")

		require.NoError(t, err)
		assert.Nil(t, note.ModifiedUtc)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE id").
			WithArgs("note-1", "other").
			WillReturnError(pgx.ErrNoRows)

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, "note-1", "other")

		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE id").
			WithArgs("note-1", "owner-1").
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, "note-1", "owner-1")

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Nil(t, note)
	})
}

func TestNoteRepository_ListByOwner(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE owner_id = \\$1").
			WithArgs("owner-1").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("a", "owner-1", "A", "a", false, created, (*time.Time)(nil)).
				AddRow("b", "owner-1", "B", "b", true, created.Add(time.Hour), (*time.Time)(nil)))

		notes, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, "owner-1")

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "a", notes[0].ID)
		assert.True(t, notes[1].IsStarred)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE owner_id").
			WithArgs("owner-1").
			WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, "owner-1")

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE owner_id").
			WithArgs("owner-1").
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, "owner-1")

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrListNotes)
	})

	t.Run("row error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM notes WHERE owner_id").
			WithArgs("owner-1").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("a", "owner-1", "A", "a", false, created, (*time.Time)(nil)).
				RowError(0, errDatabaseConnection))

		_, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, "owner-1")

		require.Error(t, err)
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note := entities.NewNote("note-1", "owner-1", "Title", "Body", created)
	note.ApplyEdit("New", "New body", true, created.Add(time.Hour))

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE notes SET title = \\$1, content = \\$2, is_starred = \\$3, modified_utc = \\$4").
			WithArgs("New", "New body", true, pgxmock.AnyArg(), "note-1", "owner-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewNoteRepository(mock).Update(ctx, note))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows affected", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE notes").
			WithArgs("New", "New body", true, pgxmock.AnyArg(), "note-1", "owner-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := postgres.NewNoteRepository(mock).Update(ctx, note)

		require.ErrorIs(t, err, repositories.ErrNoteNotFoundOrNotOwned)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE notes").
			WithArgs("New", "New body", true, pgxmock.AnyArg(), "note-1", "owner-1").
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).Update(ctx, note)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrUpdateNote)
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes WHERE id = \\$1 AND owner_id = \\$2").
			WithArgs("note-1", "owner-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewNoteRepository(mock).Delete(ctx, "note-1", "owner-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes").
			WithArgs("note-1", "owner-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewNoteRepository(mock).Delete(ctx, "note-1", "owner-1")

		require.ErrorIs(t, err, repositories.ErrNoteNotFoundOrNotOwned)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes").
			WithArgs("note-1", "owner-1").
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).Delete(ctx, "note-1", "owner-1")

		require.ErrorIs(t, err, errDatabaseConnection)
	})
}
