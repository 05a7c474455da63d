// Package entities defines the domain entities for the notes service.
package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ошибки валидации заметки.
var (
	ErrValidation   = errors.New("note validation failed")
	ErrEmptyTitle   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyContent = fmt.Errorf("%w: content is required", ErrValidation)
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID          string
	OwnerID     string
	Title       string
	Content     string
	IsStarred   bool
	CreatedUtc  time.Time
	ModifiedUtc *time.Time
}

// NormalizeInput обрезает пробелы у заголовка и текста и проверяет, что они не пусты.
func NormalizeInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return "", "", ErrEmptyTitle
	}
	if content == "" {
		return "", "", ErrEmptyContent
	}
	return title, content, nil
}

// NewNote создает заметку. Звездочка всегда снята, ModifiedUtc не задан.
// title и content должны быть уже нормализованы.
func NewNote(id, ownerID, title, content string, now time.Time) *Note {
	return &Note{
		ID:         id,
		OwnerID:    ownerID,
		Title:      title,
		Content:    content,
		IsStarred:  false,
		CreatedUtc: Timestamp(now),
	}
}

// Timestamp приводит время к UTC с точностью до микросекунды,
// как его хранит TIMESTAMPTZ.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// ApplyEdit переписывает изменяемые поля и обновляет ModifiedUtc.
// ModifiedUtc не может оказаться раньше CreatedUtc или предыдущего ModifiedUtc,
// даже если часы сдвинулись назад.
func (n *Note) ApplyEdit(title, content string, isStarred bool, now time.Time) {
	n.Title = title
	n.Content = content
	n.IsStarred = isStarred

	modified := Timestamp(now)
	if modified.Before(n.CreatedUtc) {
		modified = n.CreatedUtc
	}
	if n.ModifiedUtc != nil && modified.Before(*n.ModifiedUtc) {
		modified = *n.ModifiedUtc
	}
	n.ModifiedUtc = &modified
}

// Clone возвращает независимую копию заметки.
func (n *Note) Clone() *Note {
	c := *n
	if n.ModifiedUtc != nil {
		m := *n.ModifiedUtc
		c.ModifiedUtc = &m
	}
	return &c
}

func (n *Note) String() string {
	return fmt.Sprintf("[%s] %s", n.ID, n.Title)
}
