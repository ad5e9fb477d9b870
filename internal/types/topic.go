package types

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	TopicText           string    `gorm:"column:topic_text;not null" json:"topic_text"`
	Weight              float64   `gorm:"column:weight" json:"weight"`
	TopicType           string    `gorm:"column:topic_type" json:"topic_type"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (Topic) TableName() string { return "topics" }
