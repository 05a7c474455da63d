// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"elevennote/internal/notes/adapters/http/middleware"
	"elevennote/internal/notes/app"
	"elevennote/internal/notes/domain/entities"
	"elevennote/internal/notes/domain/services"
	"elevennote/pkg/logger"
)

// Константы ошибок и сообщений.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgIDMismatch         = "ID Mismatch"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgUnauthorized       = "authentication required"
	ErrMsgInternal           = "Internal server error"

	MsgNoteCreated = "Your note was created successfully."
	MsgNoteUpdated = "Your note was updated successfully."
	MsgNoteDeleted = "Your note was deleted."
)

// NoteUseCase - операции сервиса заметок, нужные HTTP API.
type NoteUseCase interface {
	ListNotes(ctx context.Context, ownerID string) ([]*entities.Note, error)
	GetNote(ctx context.Context, ownerID, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, ownerID, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID, title, content string, isStarred bool) (*entities.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID string) error
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// ListNotes отдает список заметок владельца: отмеченные первыми, затем новые.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	ctx, log := scope(c, "Handler.ListNotes", LogHandlerListNotes)
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	}

	notes, err := h.noteUseCase.ListNotes(ctx, ownerID)
	if err != nil {
		return handleError(c, ctx, log, err)
	}

	return send(c, fiber.StatusOK, ListResponse{Notes: services.ProjectList(notes)})
}

// GetNote отдает заметку по ID.
func (h *Handler) GetNote(c fiber.Ctx) error {
	ctx, log := scope(c, "Handler.GetNote", LogHandlerGetNote)
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	}

	noteID := c.Params("note_id")
	if noteID == "" {
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidNoteID})
	}

	note, err := h.noteUseCase.GetNote(ctx, ownerID, noteID)
	if err != nil {
		return handleError(c, ctx, log, err)
	}

	return send(c, fiber.StatusOK, NewNoteResponse(note))
}

// CreateNote создает заметку.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	ctx, log := scope(c, "Handler.CreateNote", LogHandlerCreateNote)
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	}

	var req NoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	note, err := h.noteUseCase.CreateNote(ctx, ownerID, req.Title, req.Content)
	if err != nil {
		return handleError(c, ctx, log, err)
	}

	return send(c, fiber.StatusCreated, NoteEnvelope{Note: NewNoteResponse(note), Message: MsgNoteCreated})
}

// UpdateNote перезаписывает заметку. ID в теле, если задан, должен совпасть с путем.
func (h *Handler) UpdateNote(c fiber.Ctx) error {
	ctx, log := scope(c, "Handler.UpdateNote", LogHandlerUpdateNote)
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	}

	noteID := c.Params("note_id")
	if noteID == "" {
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidNoteID})
	}

	var req NoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	if req.ID != "" && req.ID != noteID {
		log.Debug(ctx, ErrMsgIDMismatch, zap.String("path_id", noteID), zap.String("body_id", req.ID))
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgIDMismatch})
	}

	note, err := h.noteUseCase.UpdateNote(ctx, ownerID, noteID, req.Title, req.Content, req.IsStarred)
	if err != nil {
		return handleError(c, ctx, log, err)
	}

	return send(c, fiber.StatusOK, NoteEnvelope{Note: NewNoteResponse(note), Message: MsgNoteUpdated})
}

// DeleteNote удаляет заметку.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	ctx, log := scope(c, "Handler.DeleteNote", LogHandlerDeleteNote)
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	}

	noteID := c.Params("note_id")
	if noteID == "" {
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidNoteID})
	}

	if err := h.noteUseCase.DeleteNote(ctx, ownerID, noteID); err != nil {
		return handleError(c, ctx, log, err)
	}

	return send(c, fiber.StatusOK, NoteEnvelope{Message: MsgNoteDeleted})
}

func scope(c fiber.Ctx, handler, msg string) (context.Context, *logger.Logger) {
	ctx := middleware.UserContext(c)
	log := logger.Log(ctx).With(zap.String("handler", handler))
	log.Debug(ctx, msg)
	return ctx, log
}

// handleError переводит ошибки бизнес-логики в HTTP-статусы.
func handleError(c fiber.Ctx, ctx context.Context, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return send(c, fiber.StatusNotFound, fiber.Map{"error": ErrMsgNoteNotFound})
	case errors.Is(err, app.ErrValidation):
		return send(c, fiber.StatusBadRequest, fiber.Map{"error": err.Error()})
	case errors.Is(err, app.ErrUnauthorized):
		return send(c, fiber.StatusUnauthorized, fiber.Map{"error": ErrMsgUnauthorized})
	default:
		log.Error(ctx, "note operation failed", zap.Error(err))
		return send(c, fiber.StatusInternalServerError, fiber.Map{"error": ErrMsgInternal})
	}
}

func send(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
