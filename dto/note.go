package dto

import (
	"time"

	"notesvc/model"
)

// Request bodies for the notes endpoint, one per method. Length and
// non-empty rules live in the usecase layer so validation failures come
// back with field-level detail instead of gin's binding error string.

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type DeleteNotesRequest struct {
	NoteUUIDs []string `json:"note_uuid"`
}

type UpdateNoteRequest struct {
	NoteUUID string  `json:"note_uuid"`
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
}

type NoteResponse struct {
	NoteUUID  string    `json:"note_uuid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		NoteUUID:  note.NoteUUID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
