package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActionItem struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	TaskText            string         `gorm:"column:task_text;not null" json:"task_text"`
	OriginalText        string         `gorm:"column:original_text" json:"original_text"`
	AssigneeName        *string        `gorm:"column:assignee_name" json:"assignee_name"`
	DueDate             *string        `gorm:"column:due_date" json:"due_date"`
	Confidence          float64        `gorm:"column:confidence" json:"confidence"`
	Priority            string         `gorm:"column:priority" json:"priority"`
	Dependencies        datatypes.JSON `gorm:"type:jsonb;column:dependencies" json:"dependencies"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
}

func (ActionItem) TableName() string { return "action_items" }
