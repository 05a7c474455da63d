// Package terminal реализует flow.ListView для командной строки.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"elevennote/internal/client/flow"
	"elevennote/internal/notes/domain/entities"
)

// Тексты терминала.
const (
	EmptyListMessage = "You have no notes yet."
	starredMark      = "*"
	notStarredMark   = " "
)

// View печатает в out и читает ответы пользователя из in.
type View struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	busy   string
	backed bool
}

var _ flow.ListView = (*View)(nil)

// New создает терминальный View.
func New(in io.Reader, out io.Writer) *View {
	return &View{in: bufio.NewReader(in), out: out}
}

// DisplayMessage печатает сообщение и ждет Enter. Конец ввода считается подтверждением.
func (v *View) DisplayMessage(ctx context.Context, title, body, dismiss string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := fmt.Fprintf(v.out, "%s\n%s\n[%s] ", title, body, dismiss); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	_, err := v.readLine(ctx)
	return err
}

// DisplayConfirmation задает вопрос. Ответ yes (или его первая буква) без учета регистра
// означает согласие, все остальное и конец ввода - отказ.
func (v *View) DisplayConfirmation(ctx context.Context, title, body, yes, no string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := fmt.Fprintf(v.out, "%s\n%s [%s/%s] ", title, body, yes, no); err != nil {
		return false, fmt.Errorf("write confirmation: %w", err)
	}
	answer, err := v.readLine(ctx)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	yes = strings.ToLower(yes)
	return answer != "" && (answer == yes || strings.HasPrefix(yes, answer)), nil
}

// SetBusy печатает сообщение индикатора при его включении.
func (v *View) SetBusy(busy bool, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !busy {
		v.busy = ""
		return
	}
	v.busy = message
	if message != "" {
		_, _ = fmt.Fprintln(v.out, message)
	}
}

// Busy возвращает текст включенного индикатора или пустую строку.
func (v *View) Busy() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy
}

// NavigateBack отмечает, что страница закрыта.
func (v *View) NavigateBack(context.Context) error {
	v.mu.Lock()
	v.backed = true
	v.mu.Unlock()
	return nil
}

// NavigatedBack сообщает, закрыл ли сценарий страницу.
func (v *View) NavigatedBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.backed
}

// RefreshListDisplay печатает список: звездочка, ID и заголовок.
func (v *View) RefreshListDisplay(items []entities.ListItem) {
	v.mu.Lock()
	defer v.mu.Unlock()

	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		mark := notStarredMark
		if item.StarIcon == entities.StarredIcon {
			mark = starredMark
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", mark, item.ID, item.Title)
	}
	_ = w.Flush()
}

// ShowEmptyMessage печатает сообщение о пустом списке.
func (v *View) ShowEmptyMessage(visible bool) {
	if !visible {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = fmt.Fprintln(v.out, EmptyListMessage)
}

// ShowTitle печатает заголовок страницы.
func (v *View) ShowTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = fmt.Fprintf(v.out, "== %s ==\n", title)
}

// ShowNote печатает заметку целиком.
func (v *View) ShowNote(note *entities.Note) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, _ = fmt.Fprintln(v.out, note.String())
	if note.IsStarred {
		_, _ = fmt.Fprintln(v.out, "Starred")
	}
	_, _ = fmt.Fprintf(v.out, "\n%s\n", note.Content)
}

// readLine вызывается под v.mu.
func (v *View) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := v.in.ReadString('\n')
	_, _ = fmt.Fprintln(v.out)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
