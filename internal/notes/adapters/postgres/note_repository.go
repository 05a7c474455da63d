// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/ports/repositories"
	"elevennote/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которым пользуется репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Сообщения ошибок репозитория.
const (
	ErrCreateNote = "failed to create note"
	ErrGetNote    = "failed to get note"
	ErrListNotes  = "failed to list notes"
	ErrScanNote   = "failed to scan note"
	ErrIterRows   = "error iterating rows"
	ErrUpdateNote = "failed to update note"
	ErrDeleteNote = "failed to delete note"
)

const selectNoteColumns = `SELECT id, owner_id, title, content, is_starred, created_utc, modified_utc FROM notes`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("ownerID", note.OwnerID))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO notes (id, owner_id, title, content, is_starred, created_utc, modified_utc)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		note.ID, note.OwnerID, note.Title, note.Content, note.IsStarred, note.CreatedUtc, note.ModifiedUtc,
	)
	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return nil
}

// GetByID получает заметку по ID и владельцу. Возвращает nil, nil, если строки нет.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, ownerID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("ownerID", ownerID))

	note, err := scanNote(r.pool.QueryRow(ctx,
		selectNoteColumns+` WHERE id = $1 AND owner_id = $2`,
		noteID, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, ErrGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}

	return note, nil
}

// ListByOwner получает все заметки владельца.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByOwner"))
	log.Debug(ctx, "listing notes", zap.String("ownerID", ownerID))

	rows, err := r.pool.Query(ctx,
		selectNoteColumns+` WHERE owner_id = $1 ORDER BY created_utc, id`,
		ownerID,
	)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterRows, err)
	}

	return notes, nil
}

// Update перезаписывает заголовок, текст, звездочку и время изменения.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, is_starred = $3, modified_utc = $4
         WHERE id = $5 AND owner_id = $6`,
		note.Title, note.Content, note.IsStarred, note.ModifiedUtc, note.ID, note.OwnerID,
	)
	if err != nil {
		log.Error(ctx, ErrUpdateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return repositories.ErrNoteNotFoundOrNotOwned
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2`,
		noteID, ownerID,
	)
	if err != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return repositories.ErrNoteNotFoundOrNotOwned
	}

	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.IsStarred,
		&note.CreatedUtc,
		&note.ModifiedUtc,
	); err != nil {
		return nil, err
	}

	note.CreatedUtc = note.CreatedUtc.UTC()
	if note.ModifiedUtc != nil {
		m := note.ModifiedUtc.UTC()
		note.ModifiedUtc = &m
	}
	return &note, nil
}
