package types

import (
	"time"

	"github.com/google/uuid"
)

// RawFile is the immutable uploaded payload for one processing version.
// The worker only ever reads it.
type RawFile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"processing_version_id"`
	FileName            string    `gorm:"column:file_name;not null" json:"file_name"`
	MimeType            string    `gorm:"column:mime_type;not null" json:"mime_type"`
	Content             []byte    `gorm:"column:content" json:"-"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (RawFile) TableName() string { return "raw_files" }
