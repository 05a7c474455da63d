// Package memory содержит хранилище заметок в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/ports/repositories"
)

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NoteRepository хранит заметки в map под RWMutex. Наружу отдаются только копии.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*entities.Note
}

// NewNoteRepository создает пустое хранилище.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[string]*entities.Note),
	}
}

// Create сохраняет новую заметку. Повтор ID считается ошибкой.
func (r *NoteRepository) Create(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; exists {
		return fmt.Errorf("note %q already exists", note.ID)
	}
	r.notes[note.ID] = note.Clone()
	return nil
}

// GetByID возвращает копию заметки владельца или nil, nil.
func (r *NoteRepository) GetByID(_ context.Context, noteID, ownerID string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.lookup(noteID, ownerID)
	if !ok {
		return nil, nil
	}
	return note.Clone(), nil
}

// ListByOwner возвращает копии заметок владельца в порядке создания.
func (r *NoteRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if note.OwnerID == ownerID {
			notes = append(notes, note.Clone())
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedUtc.Equal(notes[j].CreatedUtc) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].CreatedUtc.Before(notes[j].CreatedUtc)
	})
	return notes, nil
}

// Update перезаписывает изменяемые поля. CreatedUtc и владелец не меняются.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.lookup(note.ID, note.OwnerID)
	if !ok {
		return repositories.ErrNoteNotFoundOrNotOwned
	}

	updated := stored.Clone()
	updated.Title = note.Title
	updated.Content = note.Content
	updated.IsStarred = note.IsStarred
	if note.ModifiedUtc != nil {
		m := *note.ModifiedUtc
		updated.ModifiedUtc = &m
	}
	r.notes[note.ID] = updated
	return nil
}

// Delete удаляет заметку владельца.
func (r *NoteRepository) Delete(_ context.Context, noteID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lookup(noteID, ownerID); !ok {
		return repositories.ErrNoteNotFoundOrNotOwned
	}
	delete(r.notes, noteID)
	return nil
}

func (r *NoteRepository) lookup(noteID, ownerID string) (*entities.Note, bool) {
	note, ok := r.notes[noteID]
	if !ok || note.OwnerID != ownerID {
		return nil, false
	}
	return note, true
}
