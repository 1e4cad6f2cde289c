package dto

type NoteDTO struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"max=20000"`
}

type MissingPartDTO struct {
	Name string `json:"name" validate:"required,max=500"`
}
