// Package grpc содержит gRPC-транспорт клиента заметок.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"elevennote/internal/client/flow"
	"elevennote/internal/client/resilience"
	"elevennote/internal/notes/domain/entities"
	notesv1 "elevennote/pkg/api/notes/v1"
	"elevennote/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodListNotes  = "ListNotes"
	LogMethodGetNote    = "GetNote"
	LogMethodCreateNote = "CreateNote"
	LogMethodUpdateNote = "UpdateNote"
	LogMethodDeleteNote = "DeleteNote"

	ErrorFailedToListNotes  = "failed to list notes"
	ErrorFailedToGetNote    = "failed to get note"
	ErrorFailedToCreateNote = "failed to create note"
	ErrorFailedToUpdateNote = "failed to update note"
	ErrorFailedToDeleteNote = "failed to delete note"
)

// Ключи metadata.
const (
	authorizationHeader = "authorization"
	requestIDHeader     = "x-request-id"
)

// Ошибки транспорта.
var (
	ErrConnectionTimeout = errors.New("connection timeout: failed to connect to notes service")
	ErrMalformedNote     = errors.New("malformed note in response")
)

// Client реализует flow.NoteGateway поверх NoteService.
type Client struct {
	api         notesv1.NoteServiceClient
	conn        *grpc.ClientConn
	token       string
	policy      *resilience.Policy
	callTimeout time.Duration
}

var _ flow.NoteGateway = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithPolicy задает политику повторов и размыкания цепи.
func WithPolicy(p *resilience.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithCallTimeout ограничивает длительность одной попытки вызова.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// DefaultPolicy повторяет чтения при недоступности сервиса и размыкает цепь
// только на отказах транспорта.
func DefaultPolicy() *resilience.Policy {
	breaker := resilience.DefaultBreakerConfig()
	breaker.IsFailure = isTransportFailure

	retry := resilience.DefaultRetryConfig()
	retry.Retryable = func(err error) bool {
		code := status.Code(err)
		return code == codes.Unavailable || code == codes.ResourceExhausted
	}
	return resilience.NewPolicy("notes", breaker, retry)
}

// NewClient создает клиента поверх готового соединения.
func NewClient(cc grpc.ClientConnInterface, token string, opts ...Option) *Client {
	c := &Client{
		api:   notesv1.NewNoteServiceClient(cc),
		token: token,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		c.policy = DefaultPolicy()
	}
	return c
}

// Dial подключается к сервису заметок и ждет готовности соединения, пока жив ctx.
func Dial(ctx context.Context, addr, token string, opts ...Option) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to notes service: %w", err)
	}

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			break
		}
		if !conn.WaitForStateChange(ctx, state) {
			if closeErr := conn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close connection: %w", closeErr)
			}
			return nil, ErrConnectionTimeout
		}
	}

	c := NewClient(conn, token, opts...)
	c.conn = conn
	return c, nil
}

// Close закрывает соединение, если его открыл Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close notes connection: %w", err)
	}
	return nil
}

// ListNotes возвращает все заметки пользователя.
func (c *Client) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodListNotes))

	var resp *notesv1.ListNotesResponse
	err := c.policy.Read(ctx, func() error {
		callCtx, cancel := c.outgoing(ctx)
		defer cancel()
		var err error
		resp, err = c.api.ListNotes(callCtx, &notesv1.ListNotesRequest{})
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToListNotes, zap.Error(err))
		return nil, classify(ErrorFailedToListNotes, err)
	}

	notes := make([]*entities.Note, 0, len(resp.GetNotes()))
	for _, n := range resp.GetNotes() {
		note, err := FromProto(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", ErrorFailedToListNotes, flow.ErrTransport, err)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID.
func (c *Client) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGetNote), zap.String("note_id", noteID))

	var resp *notesv1.GetNoteResponse
	err := c.policy.Read(ctx, func() error {
		callCtx, cancel := c.outgoing(ctx)
		defer cancel()
		var err error
		resp, err = c.api.GetNote(callCtx, &notesv1.GetNoteRequest{NoteId: noteID})
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToGetNote, zap.Error(err))
		return nil, classify(ErrorFailedToGetNote, err)
	}
	return noteFromResponse(ErrorFailedToGetNote, resp.GetNote())
}

// CreateNote создает заметку. Вызов не повторяется.
func (c *Client) CreateNote(ctx context.Context, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreateNote))

	var resp *notesv1.CreateNoteResponse
	err := c.policy.Write(ctx, func() error {
		callCtx, cancel := c.outgoing(ctx)
		defer cancel()
		var err error
		resp, err = c.api.CreateNote(callCtx, &notesv1.CreateNoteRequest{Title: title, Content: content})
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToCreateNote, zap.Error(err))
		return nil, classify(ErrorFailedToCreateNote, err)
	}
	return noteFromResponse(ErrorFailedToCreateNote, resp.GetNote())
}

// UpdateNote переписывает заметку. Вызов не повторяется.
func (c *Client) UpdateNote(ctx context.Context, noteID, title, content string, isStarred bool) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodUpdateNote), zap.String("note_id", noteID))

	var resp *notesv1.UpdateNoteResponse
	err := c.policy.Write(ctx, func() error {
		callCtx, cancel := c.outgoing(ctx)
		defer cancel()
		var err error
		resp, err = c.api.UpdateNote(callCtx, &notesv1.UpdateNoteRequest{
			NoteId:    noteID,
			Title:     title,
			Content:   content,
			IsStarred: isStarred,
		})
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToUpdateNote, zap.Error(err))
		return nil, classify(ErrorFailedToUpdateNote, err)
	}
	return noteFromResponse(ErrorFailedToUpdateNote, resp.GetNote())
}

// DeleteNote удаляет заметку. Вызов не повторяется.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDeleteNote), zap.String("note_id", noteID))

	err := c.policy.Write(ctx, func() error {
		callCtx, cancel := c.outgoing(ctx)
		defer cancel()
		_, err := c.api.DeleteNote(callCtx, &notesv1.DeleteNoteRequest{NoteId: noteID})
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToDeleteNote, zap.Error(err))
		return classify(ErrorFailedToDeleteNote, err)
	}
	return nil
}

// outgoing добавляет токен, request_id и таймаут попытки.
func (c *Client) outgoing(ctx context.Context) (context.Context, context.CancelFunc) {
	requestID, ok := logger.GetRequestID(ctx)
	if !ok {
		requestID = logger.GenerateRequestID()
	}
	ctx = metadata.AppendToOutgoingContext(ctx,
		authorizationHeader, "Bearer "+c.token,
		requestIDHeader, requestID,
	)
	if c.callTimeout > 0 {
		return context.WithTimeout(ctx, c.callTimeout)
	}
	return context.WithCancel(ctx)
}

// classify приводит ошибку вызова к ошибкам flow.
func classify(op string, err error) error {
	if errors.Is(err, resilience.ErrBreakerOpen) {
		return fmt.Errorf("%s: %w: %w", op, flow.ErrTransport, err)
	}

	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w: %s", op, flow.ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w: %s", op, flow.ErrValidation, st.Message())
	default:
		return fmt.Errorf("%s: %w: %w", op, flow.ErrTransport, err)
	}
}

// isTransportFailure сообщает, говорит ли ошибка о проблеме с сервисом,
// а не с конкретным запросом.
func isTransportFailure(err error) bool {
	switch status.Code(err) {
	case codes.NotFound, codes.InvalidArgument, codes.Unauthenticated, codes.Canceled:
		return false
	default:
		return true
	}
}

func noteFromResponse(op string, n *notesv1.Note) (*entities.Note, error) {
	note, err := FromProto(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, flow.ErrTransport, err)
	}
	return note, nil
}

// FromProto переводит заметку с провода в доменную.
func FromProto(n *notesv1.Note) (*entities.Note, error) {
	if n == nil || n.GetId() == "" {
		return nil, ErrMalformedNote
	}

	created, err := time.Parse(time.RFC3339Nano, n.GetCreatedUtc())
	if err != nil {
		return nil, fmt.Errorf("%w: createdUtc: %w", ErrMalformedNote, err)
	}

	note := &entities.Note{
		ID:         n.GetId(),
		Title:      n.GetTitle(),
		Content:    n.GetContent(),
		IsStarred:  n.GetIsStarred(),
		CreatedUtc: created.UTC(),
	}
	if m := n.GetModifiedUtc(); m != nil {
		modified, err := time.Parse(time.RFC3339Nano, *m)
		if err != nil {
			return nil, fmt.Errorf("%w: modifiedUtc: %w", ErrMalformedNote, err)
		}
		modified = modified.UTC()
		note.ModifiedUtc = &modified
	}
	return note, nil
}
