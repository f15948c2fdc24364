package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// SaveNoteResponse reports the persisted record plus the outcome of the
// summary step. SummaryWarning is set when generation was attempted and
// failed; the save itself still succeeded.
type SaveNoteResponse struct {
	Id             uuid.UUID `json:"id"`
	Summary        *string   `json:"summary,omitempty"`
	SummaryWarning string    `json:"summary_warning,omitempty"`
}

type ShowNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   *string    `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListNoteResponse struct {
	Notes []*ShowNoteResponse `json:"notes"`
}

// PublishNoteEventMessage is the payload placed on the in-process bus after a
// successful mutation.
type PublishNoteEventMessage struct {
	NoteId uuid.UUID `json:"note_id"`
	UserId uuid.UUID `json:"user_id"`
	Action string    `json:"action"` // "created" | "updated" | "deleted"
}
