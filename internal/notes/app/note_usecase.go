// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/ports/repositories"
	"elevennote/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound     = errors.New("note not found")
	ErrValidation   = errors.New("invalid note")
	ErrUnauthorized = errors.New("unauthorized access")
)

// Сообщения ошибок хранилища.
const (
	ErrListNotes  = "failed to list notes"
	ErrGetNote    = "failed to get note"
	ErrCreateNote = "failed to create note"
	ErrUpdateNote = "failed to update note"
	ErrDeleteNote = "failed to delete note"
)

// Сообщения журнала.
const (
	LogNoteCreated = "note created"
	LogNoteUpdated = "note updated"
	LogNoteDeleted = "note deleted"
)

// Option настраивает NoteUseCase.
type Option func(*NoteUseCase)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(uc *NoteUseCase) {
		uc.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов заметок.
func WithIDGenerator(newID func() string) Option {
	return func(uc *NoteUseCase) {
		uc.newID = newID
	}
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Владелец передается явно в каждый вызов, поэтому один экземпляр обслуживает всех пользователей.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	now      func() time.Time
	newID    func() string
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, opts ...Option) *NoteUseCase {
	uc := &NoteUseCase{
		noteRepo: noteRepo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListNotes возвращает все заметки владельца без определенного порядка.
func (uc *NoteUseCase) ListNotes(ctx context.Context, ownerID string) ([]*entities.Note, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}

	notes, err := uc.noteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	if notes == nil {
		notes = []*entities.Note{}
	}
	return notes, nil
}

// GetNote возвращает заметку владельца по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, ownerID, noteID string) (*entities.Note, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// CreateNote создает заметку. Звездочка при создании всегда снята.
func (uc *NoteUseCase) CreateNote(ctx context.Context, ownerID, title, content string) (*entities.Note, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}

	title, content, err := entities.NormalizeInput(title, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	note := entities.NewNote(uc.newID(), ownerID, title, content, uc.now())
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	logger.Log(ctx).Info(ctx, LogNoteCreated, zap.String("noteID", note.ID), zap.String("ownerID", ownerID))
	return note, nil
}

// UpdateNote перезаписывает заголовок, текст и звездочку заметки.
// Сначала проверяется существование, затем входные данные.
func (uc *NoteUseCase) UpdateNote(
	ctx context.Context,
	ownerID, noteID, title, content string,
	isStarred bool,
) (*entities.Note, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	title, content, err = entities.NormalizeInput(title, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	note.ApplyEdit(title, content, isStarred, uc.now())

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFoundOrNotOwned) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrUpdateNote, err)
	}

	logger.Log(ctx).Info(ctx, LogNoteUpdated, zap.String("noteID", note.ID), zap.Bool("isStarred", isStarred))
	return note, nil
}

// DeleteNote удаляет заметку одним условным удалением.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	if err := checkOwner(ownerID); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFoundOrNotOwned) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	logger.Log(ctx).Info(ctx, LogNoteDeleted, zap.String("noteID", noteID))
	return nil
}

func checkOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrUnauthorized
	}
	return nil
}
