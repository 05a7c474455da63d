// Package flow реализует сценарии клиента заметок: список, загрузку, сохранение
// и удаление заметки с индикатором занятости, сообщениями и возвратом к списку.
package flow

// State - состояние страницы.
type State int

// Состояния страницы.
const (
	Idle State = iota
	Loading
	Populated
	LoadError
	Saving
	SaveSuccess
	SaveError
	ConfirmingDelete
	Deleting
	DeleteSuccess
	DeleteError
)

var stateNames = [...]string{
	Idle:             "Idle",
	Loading:          "Loading",
	Populated:        "Populated",
	LoadError:        "LoadError",
	Saving:           "Saving",
	SaveSuccess:      "SaveSuccess",
	SaveError:        "SaveError",
	ConfirmingDelete: "ConfirmingDelete",
	Deleting:         "Deleting",
	DeleteSuccess:    "DeleteSuccess",
	DeleteError:      "DeleteError",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
