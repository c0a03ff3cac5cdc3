package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoredFile is an uploaded text file held by a file store.
type StoredFile struct {
	ID        uuid.UUID `json:"file_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (f StoredFile) Expired(now time.Time) bool {
	return !f.ExpiresAt.IsZero() && !now.Before(f.ExpiresAt)
}
