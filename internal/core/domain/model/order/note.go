package order

import (
	"time"

	"notpickedup/internal/core/domain/model/kernel"
)

// Note is an entry in the order's private history.
type Note struct {
	ID        kernel.UUID
	Content   string
	CreatedAt time.Time
}

func newNote(content string, now time.Time) Note {
	return Note{ID: kernel.NewUUID(), Content: content, CreatedAt: now.UTC()}
}
