package entities

// Иконки состояния звездочки в списке.
const (
	StarredIcon    = "starred.png"
	NotStarredIcon = "notstarred.png"
)

// ListItem - строка списка заметок. Текст, владелец и даты в список не попадают.
type ListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsStarred bool   `json:"isStarred"`
	StarIcon  string `json:"starIcon"`
}

// NewListItem строит строку списка для заметки.
func NewListItem(n *Note) ListItem {
	icon := NotStarredIcon
	if n.IsStarred {
		icon = StarredIcon
	}
	return ListItem{
		ID:        n.ID,
		Title:     n.Title,
		IsStarred: n.IsStarred,
		StarIcon:  icon,
	}
}
