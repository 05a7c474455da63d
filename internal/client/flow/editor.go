package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"elevennote/internal/notes/domain/entities"
	"elevennote/pkg/logger"
)

// Заголовки страницы редактора.
const (
	TitleNewNote  = "New Note"
	TitleEditNote = "Edit Note"
)

// Draft - несохраненное содержимое редактора.
type Draft struct {
	Title     string
	Content   string
	IsStarred bool
}

// Editor - страница создания или редактирования заметки.
type Editor struct {
	page
	gateway NoteGateway
	view    View
	noteID  string
	draft   Draft
}

// NewEditor создает редактор. Пустой noteID означает новую заметку.
func NewEditor(gateway NoteGateway, view View, noteID string) *Editor {
	return &Editor{gateway: gateway, view: view, noteID: noteID}
}

// IsNew сообщает, что заметка еще не сохранена.
func (e *Editor) IsNew() bool {
	return e.noteID == ""
}

// NoteID возвращает идентификатор редактируемой заметки.
func (e *Editor) NoteID() string {
	return e.noteID
}

// Title возвращает заголовок страницы.
func (e *Editor) Title() string {
	if e.IsNew() {
		return TitleNewNote
	}
	return TitleEditNote
}

// CanStar сообщает, доступна ли звездочка. У новой заметки она выключена.
func (e *Editor) CanStar() bool {
	return !e.IsNew()
}

// Draft возвращает копию черновика.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetTitle меняет заголовок черновика.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	e.draft.Title = title
	e.mu.Unlock()
}

// SetContent меняет текст черновика.
func (e *Editor) SetContent(content string) {
	e.mu.Lock()
	e.draft.Content = content
	e.mu.Unlock()
}

// SetStarred меняет звездочку черновика.
func (e *Editor) SetStarred(starred bool) error {
	if !e.CanStar() {
		return ErrStarringDisabled
	}
	e.mu.Lock()
	e.draft.IsStarred = starred
	e.mu.Unlock()
	return nil
}

// Load загружает существующую заметку в черновик. Для новой заметки ничего не делает.
// Если заметку загрузить не удалось, пользователь видит сообщение и возвращается к списку.
func (e *Editor) Load(ctx context.Context) error {
	if e.IsNew() {
		return nil
	}
	if err := e.begin(); err != nil {
		return err
	}
	defer e.finish()

	log := logger.Log(ctx).With(zap.String("method", LogMethodLoad), zap.String("note_id", e.noteID))

	e.set(Loading)
	e.view.SetBusy(true, BusyLoadingNote)

	note, err := e.gateway.GetNote(ctx, e.noteID)

	e.view.SetBusy(false, "")
	if err != nil {
		e.set(LoadError)
		log.Warn(ctx, LogOperationFailed, zap.Error(err))
		a := alertLoadFailed
		if errors.Is(err, ErrNotFound) {
			a = alertNoteMissing
		}
		return report(ctx, e.view, a, true, err)
	}

	e.mu.Lock()
	e.draft = Draft{Title: note.Title, Content: note.Content, IsStarred: note.IsStarred}
	e.state = Populated
	e.mu.Unlock()
	return nil
}

// Save создает или обновляет заметку. После успеха пользователь возвращается к списку,
// после ошибки остается в редакторе с нетронутым черновиком.
func (e *Editor) Save(ctx context.Context) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.finish()

	log := logger.Log(ctx).With(zap.String("method", LogMethodSave), zap.String("note_id", e.noteID))
	draft := e.Draft()

	title, content, err := entities.NormalizeInput(draft.Title, draft.Content)
	if err != nil {
		e.set(SaveError)
		return report(ctx, e.view, alertInvalidNote, false, fmt.Errorf("%w: %w", ErrValidation, err))
	}

	e.set(Saving)
	e.view.SetBusy(true, BusySaving)

	success := alertNoteUpdated
	if e.IsNew() {
		success = alertNoteAdded
		_, err = e.gateway.CreateNote(ctx, title, content)
	} else {
		_, err = e.gateway.UpdateNote(ctx, e.noteID, title, content, draft.IsStarred)
	}

	e.view.SetBusy(false, "")
	if err != nil {
		e.set(SaveError)
		log.Warn(ctx, LogOperationFailed, zap.Error(err))
		a := alertSaveFailed
		if errors.Is(err, ErrValidation) {
			a = alertInvalidNote
		}
		return report(ctx, e.view, a, false, err)
	}

	e.set(SaveSuccess)
	return report(ctx, e.view, success, true, nil)
}

// Delete удаляет заметку после подтверждения. Отказ возвращает страницу в Idle
// без обращения к сервису.
func (e *Editor) Delete(ctx context.Context) error {
	if e.IsNew() {
		return ErrNoteNotSaved
	}
	if err := e.begin(); err != nil {
		return err
	}
	defer e.finish()

	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("note_id", e.noteID))

	e.set(ConfirmingDelete)
	c := alertConfirmDelete
	confirmed, err := e.view.DisplayConfirmation(ctx, c.title, c.body, c.yes, c.no)
	if err != nil {
		e.set(Idle)
		return fmt.Errorf("%s: %w", ErrDisplayConfirmation, err)
	}
	if !confirmed {
		e.set(Idle)
		return nil
	}

	e.set(Deleting)
	e.view.SetBusy(true, BusyDeleting)

	err = e.gateway.DeleteNote(ctx, e.noteID)

	e.view.SetBusy(false, "")
	if err != nil {
		e.set(DeleteError)
		log.Warn(ctx, LogOperationFailed, zap.Error(err))
		a := alertDeleteOffline
		if errors.Is(err, ErrNotFound) {
			a = alertDeleteFailed
		}
		return report(ctx, e.view, a, false, err)
	}

	e.set(DeleteSuccess)
	return report(ctx, e.view, alertNoteDeleted, true, nil)
}
