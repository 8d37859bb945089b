package model

import (
	"salon/shared/timezone"
	"time"
)

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// NewMetadata stamps a fresh row as created and last modified by the same actor.
func NewMetadata(by string) Metadata {
	now := timezone.Now()

	return Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: by, ModifiedBy: by}
}
