package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Summary   *string // nil until a summary was ever generated
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
