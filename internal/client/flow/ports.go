package flow

import (
	"context"
	"errors"

	"elevennote/internal/notes/domain/entities"
)

// Ошибки клиента. Транспорт обязан приводить свои ошибки к ErrNotFound,
// ErrValidation или ErrTransport.
var (
	ErrBusy             = errors.New("another operation is in progress")
	ErrNotFound         = errors.New("note not found")
	ErrValidation       = errors.New("note validation failed")
	ErrTransport        = errors.New("notes service unavailable")
	ErrStarringDisabled = errors.New("a new note cannot be starred")
	ErrNoteNotSaved     = errors.New("note has not been saved yet")
)

// NoteGateway - удаленный сервис заметок текущего пользователя.
type NoteGateway interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	GetNote(ctx context.Context, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, noteID, title, content string, isStarred bool) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

// View - поверхность взаимодействия с пользователем.
type View interface {
	// DisplayMessage показывает сообщение и ждет, пока пользователь его закроет.
	DisplayMessage(ctx context.Context, title, body, dismiss string) error
	// DisplayConfirmation задает вопрос и возвращает true, если выбран yes.
	DisplayConfirmation(ctx context.Context, title, body, yes, no string) (bool, error)
	SetBusy(busy bool, message string)
	NavigateBack(ctx context.Context) error
}

// ListView - View страницы списка.
type ListView interface {
	View
	RefreshListDisplay(items []entities.ListItem)
	ShowEmptyMessage(visible bool)
}

// alert - сообщение пользователю.
type alert struct {
	title   string
	body    string
	dismiss string
}

// Тексты сообщений.
var (
	alertNoteAdded     = alert{"Great!", "The note was added.", "Cool!"}
	alertNoteUpdated   = alert{"Great!", "The note's been updated.", "Cool!"}
	alertNoteDeleted   = alert{"Great!", "The note has been deleted.", "Okie Dokie"}
	alertSaveFailed    = alert{"Bummer", "The note could not be saved. Are you connected?", "Okie Dokie"}
	alertInvalidNote   = alert{"Bummer", "A note needs both a title and some content.", "Okie Dokie"}
	alertDeleteFailed  = alert{"Bummer", "The note could not be deleted. Are you sure it's still there?", "Okie Dokie"}
	alertDeleteOffline = alert{"Bummer", "The note could not be deleted. Are you connected?", "Okie Dokie"}
	alertNoteMissing   = alert{"Whoops", "That note couldn't be found. Maybe it's been deleted?", "Ok"}
	alertLoadFailed    = alert{"Bummer", "The note could not be loaded. Are you connected?", "Okie Dokie"}
	alertListFailed    = alert{"Bummer", "The notes could not be loaded. Are you connected?", "Okie Dokie"}
	alertConfirmDelete = struct{ title, body, yes, no string }{
		"Well?", "Are you sure you want to delete this note?", "Yep", "Nope",
	}
)

// Тексты индикатора занятости.
const (
	BusyLoadingNote  = "Please wait, loading note..."
	BusyLoadingNotes = "Please wait, loading notes..."
	BusySaving       = "Saving, one moment..."
	BusyDeleting     = "Deleting, one moment..."
)

func show(ctx context.Context, v View, a alert) error {
	return v.DisplayMessage(ctx, a.title, a.body, a.dismiss)
}
