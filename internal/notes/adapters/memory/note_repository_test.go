package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevennote/internal/notes/adapters/memory"
	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/ports/repositories"
)

var created = time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)

func TestNoteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()
	note := entities.NewNote("n1", "alice", "Title", "Body", created)

	require.NoError(t, repo.Create(ctx, note))
	require.Error(t, repo.Create(ctx, note), "duplicate id")

	got, err := repo.GetByID(ctx, "n1", "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Title", got.Title)

	got.Title = "mutated outside"
	again, err := repo.GetByID(ctx, "n1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Title", again.Title)

	again.ApplyEdit("New", "New body", true, created.Add(time.Minute))
	require.NoError(t, repo.Update(ctx, again))

	updated, err := repo.GetByID(ctx, "n1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.IsStarred)
	require.NotNil(t, updated.ModifiedUtc)
	assert.Equal(t, created, updated.CreatedUtc)

	require.NoError(t, repo.Delete(ctx, "n1", "alice"))
	require.ErrorIs(t, repo.Delete(ctx, "n1", "alice"), repositories.ErrNoteNotFoundOrNotOwned)

	gone, err := repo.GetByID(ctx, "n1", "alice")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNoteRepository_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()
	require.NoError(t, repo.Create(ctx, entities.NewNote("a1", "alice", "A", "a", created)))
	require.NoError(t, repo.Create(ctx, entities.NewNote("b1", "bob", "B", "b", created)))

	foreign, err := repo.GetByID(ctx, "a1", "bob")
	require.NoError(t, err)
	assert.Nil(t, foreign)

	bobs, err := repo.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "b1", bobs[0].ID)

	steal := entities.NewNote("a1", "bob", "x", "y", created)
	require.ErrorIs(t, repo.Update(ctx, steal), repositories.ErrNoteNotFoundOrNotOwned)
	require.ErrorIs(t, repo.Delete(ctx, "a1", "bob"), repositories.ErrNoteNotFoundOrNotOwned)

	alices, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, "A", alices[0].Title)
}

func TestNoteRepository_ListEmpty(t *testing.T) {
	notes, err := memory.NewNoteRepository().ListByOwner(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('A'+i%26)) + time.Duration(i).String()
			_ = repo.Create(ctx, entities.NewNote(id, "alice", "t", "c", created.Add(time.Duration(i))))
			_, _ = repo.ListByOwner(ctx, "alice")
		}(i)
	}
	wg.Wait()

	notes, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, notes, 50)
}
