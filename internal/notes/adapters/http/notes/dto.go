package notes

import (
	"time"

	"elevennote/internal/notes/domain/entities"
)

// NoteRequest - тело POST и PUT. ID в теле необязателен; для PUT он должен совпасть с путем.
type NoteRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsStarred bool   `json:"isStarred"`
}

// NoteResponse - заметка в ответе API.
type NoteResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsStarred   bool       `json:"isStarred"`
	CreatedUtc  time.Time  `json:"createdUtc"`
	ModifiedUtc *time.Time `json:"modifiedUtc"`
}

// NoteEnvelope - ответ на изменение заметки с сообщением для пользователя.
type NoteEnvelope struct {
	Note    *NoteResponse `json:"note,omitempty"`
	Message string        `json:"message"`
}

// ListResponse - упорядоченный список заметок.
type ListResponse struct {
	Notes []entities.ListItem `json:"notes"`
}

// NewNoteResponse переводит заметку в DTO. Время отдается в UTC.
func NewNoteResponse(n *entities.Note) *NoteResponse {
	resp := &NoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		IsStarred:  n.IsStarred,
		CreatedUtc: n.CreatedUtc.UTC(),
	}
	if n.ModifiedUtc != nil {
		m := n.ModifiedUtc.UTC()
		resp.ModifiedUtc = &m
	}
	return resp
}
