package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Константы для логирования.
const (
	LogMethodAppear  = "Appear"
	LogMethodRefresh = "Refresh"
	LogMethodLoad    = "Load"
	LogMethodSave    = "Save"
	LogMethodDelete  = "Delete"

	LogOperationFailed = "note operation failed"
	LogStateChanged    = "page state changed"

	ErrDisplayMessage      = "failed to display message"
	ErrDisplayConfirmation = "failed to display confirmation"
	ErrNavigateBack        = "failed to navigate back"
)

// page хранит состояние страницы и не дает запустить вторую операцию,
// пока первая не завершилась.
type page struct {
	mu       sync.Mutex
	inFlight bool
	state    State
}

func (p *page) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight {
		return ErrBusy
	}
	p.inFlight = true
	return nil
}

func (p *page) finish() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}

func (p *page) set(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// State возвращает текущее состояние страницы.
func (p *page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// report показывает сообщение и, если нужно, возвращается к списку.
// Ошибка операции остается первой в цепочке, ошибки View добавляются к ней.
func report(ctx context.Context, v View, a alert, back bool, opErr error) error {
	if err := show(ctx, v, a); err != nil {
		return errors.Join(opErr, fmt.Errorf("%s: %w", ErrDisplayMessage, err))
	}
	if back {
		if err := v.NavigateBack(ctx); err != nil {
			return errors.Join(opErr, fmt.Errorf("%s: %w", ErrNavigateBack, err))
		}
	}
	return opErr
}
