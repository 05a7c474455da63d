// Package grpc provides gRPC handlers for the notes service.
package grpc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"elevennote/internal/notes/app"
	"elevennote/internal/notes/domain/entities"
	notesv1 "elevennote/pkg/api/notes/v1"
	"elevennote/pkg/logger"
)

// Ошибки извлечения токена.
var (
	ErrMetadataNotFound   = errors.New("metadata not found in context")
	ErrAuthHeaderNotFound = errors.New("authorization header not found")
	ErrInvalidAuthFormat  = errors.New("invalid authorization header format")
)

// NoteUseCase - операции сервиса заметок, нужные обработчику.
type NoteUseCase interface {
	ListNotes(ctx context.Context, ownerID string) ([]*entities.Note, error)
	GetNote(ctx context.Context, ownerID, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, ownerID, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID, title, content string, isStarred bool) (*entities.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID string) error
}

// NoteHandler обрабатывает gRPC запросы к сервису заметок.
type NoteHandler struct {
	noteUseCase NoteUseCase
	notesv1.UnimplementedNoteServiceServer
}

// NewNoteHandler создает новый обработчик gRPC запросов к сервису заметок.
func NewNoteHandler(noteUseCase NoteUseCase) *NoteHandler {
	return &NoteHandler{
		noteUseCase: noteUseCase,
	}
}

// RegisterService регистрирует обработчик на сервере.
func (h *NoteHandler) RegisterService(s grpc.ServiceRegistrar) {
	notesv1.RegisterNoteServiceServer(s, h)
}

// ListNotes возвращает все заметки владельца.
func (h *NoteHandler) ListNotes(ctx context.Context, _ *notesv1.ListNotesRequest) (*notesv1.ListNotesResponse, error) {
	log := logger.Log(ctx).With(zap.String("handler", "NoteHandler.ListNotes"))

	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := h.noteUseCase.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, fail(ctx, log, err, "failed to list notes")
	}

	resp := &notesv1.ListNotesResponse{Notes: make([]*notesv1.Note, 0, len(notes))}
	for _, note := range notes {
		resp.Notes = append(resp.Notes, NoteToProto(note))
	}
	return resp, nil
}

// GetNote получает заметку по ID.
func (h *NoteHandler) GetNote(ctx context.Context, req *notesv1.GetNoteRequest) (*notesv1.GetNoteResponse, error) {
	log := logger.Log(ctx).With(zap.String("handler", "NoteHandler.GetNote"))
	log.Debug(ctx, "get note request received", zap.String("noteID", req.GetNoteId()))

	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	note, err := h.noteUseCase.GetNote(ctx, ownerID, req.GetNoteId())
	if err != nil {
		return nil, fail(ctx, log, err, "failed to get note")
	}
	return &notesv1.GetNoteResponse{Note: NoteToProto(note)}, nil
}

// CreateNote создает новую заметку.
func (h *NoteHandler) CreateNote(ctx context.Context, req *notesv1.CreateNoteRequest) (*notesv1.CreateNoteResponse, error) {
	log := logger.Log(ctx).With(zap.String("handler", "NoteHandler.CreateNote"))

	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	note, err := h.noteUseCase.CreateNote(ctx, ownerID, req.GetTitle(), req.GetContent())
	if err != nil {
		return nil, fail(ctx, log, err, "failed to create note")
	}
	return &notesv1.CreateNoteResponse{Note: NoteToProto(note)}, nil
}

// UpdateNote перезаписывает заметку.
func (h *NoteHandler) UpdateNote(ctx context.Context, req *notesv1.UpdateNoteRequest) (*notesv1.UpdateNoteResponse, error) {
	log := logger.Log(ctx).With(zap.String("handler", "NoteHandler.UpdateNote"))
	log.Debug(ctx, "update note request received", zap.String("noteID", req.GetNoteId()))

	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	note, err := h.noteUseCase.UpdateNote(ctx, ownerID, req.GetNoteId(), req.GetTitle(), req.GetContent(), req.GetIsStarred())
	if err != nil {
		return nil, fail(ctx, log, err, "failed to update note")
	}
	return &notesv1.UpdateNoteResponse{Note: NoteToProto(note)}, nil
}

// DeleteNote удаляет заметку.
func (h *NoteHandler) DeleteNote(ctx context.Context, req *notesv1.DeleteNoteRequest) (*notesv1.DeleteNoteResponse, error) {
	log := logger.Log(ctx).With(zap.String("handler", "NoteHandler.DeleteNote"))
	log.Debug(ctx, "delete note request received", zap.String("noteID", req.GetNoteId()))

	ownerID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.noteUseCase.DeleteNote(ctx, ownerID, req.GetNoteId()); err != nil {
		return nil, fail(ctx, log, err, "failed to delete note")
	}
	return &notesv1.DeleteNoteResponse{Success: true}, nil
}

func ownerFrom(ctx context.Context) (string, error) {
	ownerID, ok := OwnerIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return ownerID, nil
}

// fail пишет ошибку в журнал и переводит ее в статус gRPC.
func fail(ctx context.Context, log *logger.Logger, err error, msg string) error {
	st := toStatus(err, msg)
	if status.Code(st) == codes.Internal {
		log.Error(ctx, msg, zap.Error(err))
	} else {
		log.Debug(ctx, msg, zap.Error(err))
	}
	return st
}

// toStatus переводит ошибки бизнес-логики в коды gRPC. Детали внутренних ошибок клиенту не отдаются.
func toStatus(err error, internalMsg string) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, "note not found")
	case errors.Is(err, app.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "authentication required")
	default:
		return status.Error(codes.Internal, internalMsg)
	}
}

// NoteToProto переводит заметку в сообщение контракта.
func NoteToProto(note *entities.Note) *notesv1.Note {
	out := &notesv1.Note{
		Id:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		IsStarred:  note.IsStarred,
		CreatedUtc: note.CreatedUtc.UTC().Format(time.RFC3339Nano),
	}
	if note.ModifiedUtc != nil {
		modified := note.ModifiedUtc.UTC().Format(time.RFC3339Nano)
		out.ModifiedUtc = &modified
	}
	return out
}
