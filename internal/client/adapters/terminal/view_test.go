package terminal_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevennote/internal/client/adapters/terminal"
	"elevennote/internal/notes/domain/entities"
)

func TestView_DisplayMessageWaitsForEnter(t *testing.T) {
	var out bytes.Buffer
	v := terminal.New(strings.NewReader("\n"), &out)

	require.NoError(t, v.DisplayMessage(context.Background(), "Great!", "The note was added.", "Cool!"))

	assert.Contains(t, out.String(), "Great!\nThe note was added.\n[Cool!] ")
}

func TestView_DisplayMessageAtEOF(t *testing.T) {
	v := terminal.New(strings.NewReader(""), &bytes.Buffer{})

	assert.NoError(t, v.DisplayMessage(context.Background(), "t", "b", "ok"))
}

func TestView_DisplayConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Yep\n", true},
		{"y\n", true},
		{"YEP\n", true},
		{"Nope\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			v := terminal.New(strings.NewReader(tt.input), &out)

			got, err := v.DisplayConfirmation(context.Background(), "Well?", "Are you sure?", "Yep", "Nope")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Are you sure? [Yep/Nope]")
		})
	}
}

func TestView_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := terminal.New(strings.NewReader("y\n"), &bytes.Buffer{})

	_, err := v.DisplayConfirmation(ctx, "t", "b", "y", "n")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestView_BusyAndNavigation(t *testing.T) {
	var out bytes.Buffer
	v := terminal.New(strings.NewReader(""), &out)

	v.SetBusy(true, "Saving, one moment...")
	assert.Equal(t, "Saving, one moment...", v.Busy())
	v.SetBusy(false, "")
	assert.Empty(t, v.Busy())

	assert.False(t, v.NavigatedBack())
	require.NoError(t, v.NavigateBack(context.Background()))
	assert.True(t, v.NavigatedBack())
	assert.Equal(t, "Saving, one moment...\n", out.String())
}

func TestView_List(t *testing.T) {
	var out bytes.Buffer
	v := terminal.New(strings.NewReader(""), &out)

	v.RefreshListDisplay([]entities.ListItem{
		entities.NewListItem(&entities.Note{ID: "n1", Title: "Starred one", IsStarred: true}),
		entities.NewListItem(&entities.Note{ID: "n2", Title: "Plain"}),
	})
	v.ShowEmptyMessage(false)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*"))
	assert.Contains(t, lines[0], "Starred one")
	assert.True(t, strings.HasPrefix(lines[1], " "))

	out.Reset()
	v.ShowEmptyMessage(true)
	assert.Equal(t, terminal.EmptyListMessage+"\n", out.String())
}

func TestView_ShowNote(t *testing.T) {
	var out bytes.Buffer
	v := terminal.New(strings.NewReader(""), &out)

	v.ShowNote(&entities.Note{ID: "n1", Title: "Title", Content: "Body", IsStarred: true})

	assert.Equal(t, "[n1] Title\nStarred\n\nBody\n", out.String())
}

func TestView_ShowTitle(t *testing.T) {
	var out bytes.Buffer
	v := terminal.New(strings.NewReader(""), &out)

	v.ShowTitle("Edit Note")

	assert.Equal(t, "== Edit Note ==\n", out.String())
}
