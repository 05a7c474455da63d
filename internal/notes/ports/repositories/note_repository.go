// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"elevennote/internal/notes/domain/entities"
)

// ErrNoteNotFoundOrNotOwned возвращается, когда заметки нет или она принадлежит другому владельцу.
var ErrNoteNotFoundOrNotOwned = errors.New("note not found or not owned by user")

// NoteRepository определяет интерфейс хранилища заметок.
// Все операции ограничены владельцем; чужая заметка неотличима от отсутствующей.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	// GetByID возвращает nil, nil, если заметка не найдена.
	GetByID(ctx context.Context, noteID, ownerID string) (*entities.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error)
	// Update перезаписывает изменяемые поля. ErrNoteNotFoundOrNotOwned, если строка не изменена.
	Update(ctx context.Context, note *entities.Note) error
	// Delete удаляет заметку. ErrNoteNotFoundOrNotOwned, если ничего не удалено.
	Delete(ctx context.Context, noteID, ownerID string) error
}
