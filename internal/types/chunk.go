package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chunk struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	TextContent         string         `gorm:"column:text_content;not null" json:"text_content"`
	Position            int            `gorm:"column:position;not null" json:"position"`
	TokenCount          int            `gorm:"column:token_count;not null" json:"token_count"`
	Embedding           datatypes.JSON `gorm:"type:jsonb;column:embedding" json:"embedding"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
}

func (Chunk) TableName() string { return "chunks" }
