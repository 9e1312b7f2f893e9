package dto

import (
	"time"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
}

// UpdateNoteRequest carries a partial update. Absent or blank fields leave the
// stored value unchanged.
type UpdateNoteRequest struct {
	Id      int64   `json:"-"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteEventType string

const (
	NoteCreated NoteEventType = "note.created"
	NoteUpdated NoteEventType = "note.updated"
	NoteDeleted NoteEventType = "note.deleted"
)

type NoteEventMessage struct {
	Type       NoteEventType `json:"type"`
	NoteId     int64         `json:"note_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
