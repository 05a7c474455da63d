// Package notesv1 описывает контракт сервиса заметок elevennote.notes.v1.NoteService.
// Сообщения передаются в JSON через зарегистрированный кодек "json".
package notesv1

// Note - заметка на проводе. Время в RFC 3339, UTC.
type Note struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	IsStarred   bool    `json:"isStarred"`
	CreatedUtc  string  `json:"createdUtc"`
	ModifiedUtc *string `json:"modifiedUtc"`
}

func (x *Note) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Note) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *Note) GetContent() string {
	if x != nil {
		return x.Content
	}
	return ""
}

func (x *Note) GetIsStarred() bool {
	if x != nil {
		return x.IsStarred
	}
	return false
}

func (x *Note) GetCreatedUtc() string {
	if x != nil {
		return x.CreatedUtc
	}
	return ""
}

func (x *Note) GetModifiedUtc() *string {
	if x != nil {
		return x.ModifiedUtc
	}
	return nil
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes []*Note `json:"notes"`
}

func (x *ListNotesResponse) GetNotes() []*Note {
	if x != nil {
		return x.Notes
	}
	return nil
}

type GetNoteRequest struct {
	NoteId string `json:"noteId"`
}

func (x *GetNoteRequest) GetNoteId() string {
	if x != nil {
		return x.NoteId
	}
	return ""
}

type GetNoteResponse struct {
	Note *Note `json:"note"`
}

func (x *GetNoteResponse) GetNote() *Note {
	if x != nil {
		return x.Note
	}
	return nil
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (x *CreateNoteRequest) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *CreateNoteRequest) GetContent() string {
	if x != nil {
		return x.Content
	}
	return ""
}

type CreateNoteResponse struct {
	Note *Note `json:"note"`
}

func (x *CreateNoteResponse) GetNote() *Note {
	if x != nil {
		return x.Note
	}
	return nil
}

type UpdateNoteRequest struct {
	NoteId    string `json:"noteId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsStarred bool   `json:"isStarred"`
}

func (x *UpdateNoteRequest) GetNoteId() string {
	if x != nil {
		return x.NoteId
	}
	return ""
}

func (x *UpdateNoteRequest) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *UpdateNoteRequest) GetContent() string {
	if x != nil {
		return x.Content
	}
	return ""
}

func (x *UpdateNoteRequest) GetIsStarred() bool {
	if x != nil {
		return x.IsStarred
	}
	return false
}

type UpdateNoteResponse struct {
	Note *Note `json:"note"`
}

func (x *UpdateNoteResponse) GetNote() *Note {
	if x != nil {
		return x.Note
	}
	return nil
}

type DeleteNoteRequest struct {
	NoteId string `json:"noteId"`
}

func (x *DeleteNoteRequest) GetNoteId() string {
	if x != nil {
		return x.NoteId
	}
	return ""
}

type DeleteNoteResponse struct {
	Success bool `json:"success"`
}

func (x *DeleteNoteResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}
