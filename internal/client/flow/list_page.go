package flow

import (
	"context"

	"go.uber.org/zap"

	"elevennote/internal/notes/domain/services"
	"elevennote/pkg/logger"
)

// ListPage - страница списка заметок. Каждый показ заново читает заметки с сервера.
type ListPage struct {
	page
	gateway NoteGateway
	view    ListView
}

// NewListPage создает страницу списка.
func NewListPage(gateway NoteGateway, view ListView) *ListPage {
	return &ListPage{gateway: gateway, view: view}
}

// Appear вызывается каждый раз, когда список становится видимым.
func (p *ListPage) Appear(ctx context.Context) error {
	return p.populate(ctx, LogMethodAppear)
}

// Refresh - ручное обновление списка.
func (p *ListPage) Refresh(ctx context.Context) error {
	return p.populate(ctx, LogMethodRefresh)
}

func (p *ListPage) populate(ctx context.Context, method string) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.finish()

	log := logger.Log(ctx).With(zap.String("method", method))

	p.set(Loading)
	p.view.SetBusy(true, BusyLoadingNotes)

	notes, err := p.gateway.ListNotes(ctx)

	p.view.SetBusy(false, "")
	if err != nil {
		p.set(LoadError)
		log.Warn(ctx, LogOperationFailed, zap.Error(err))
		// Прежний список остается на экране.
		return report(ctx, p.view, alertListFailed, false, err)
	}

	items := services.ProjectList(notes)

	p.view.RefreshListDisplay(items)
	p.view.ShowEmptyMessage(len(items) == 0)
	p.set(Populated)
	log.Debug(ctx, LogStateChanged, zap.Stringer("state", Populated), zap.Int("count", len(items)))
	return nil
}
