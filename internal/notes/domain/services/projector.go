// Package services contains pure domain services shared by the server and the clients.
package services

import (
	"sort"

	"elevennote/internal/notes/domain/entities"
)

// ProjectList упорядочивает заметки для отображения: сначала отмеченные звездочкой,
// внутри группы - от новых к старым. Сортировка стабильна, поэтому заметки с
// одинаковым CreatedUtc сохраняют входной порядок. Входной срез не изменяется.
func ProjectList(notes []*entities.Note) []entities.ListItem {
	ordered := make([]*entities.Note, 0, len(notes))
	for _, n := range notes {
		if n != nil {
			ordered = append(ordered, n)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.IsStarred != b.IsStarred {
			return a.IsStarred
		}
		return a.CreatedUtc.After(b.CreatedUtc)
	})

	items := make([]entities.ListItem, 0, len(ordered))
	for _, n := range ordered {
		items = append(items, entities.NewListItem(n))
	}
	return items
}
