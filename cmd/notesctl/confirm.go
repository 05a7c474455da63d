package main

import (
	"context"

	"elevennote/internal/client/adapters/terminal"
)

// confirmedView отвечает "да" на любой вопрос.
type confirmedView struct {
	*terminal.View
}

func (confirmedView) DisplayConfirmation(context.Context, string, string, string, string) (bool, error) {
	return true, nil
}
