package types

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingVersion status values. Transitions are forward-only within one
// job: the enqueuing API sets Pending, the worker writes exactly one of the
// terminal statuses.
const (
	StatusPending          = "Pending"
	StatusFailedNoContent  = "Failed_NoContent"
	StatusProcessedTabular = "Processed_Tabular"
	StatusProcessedText    = "Processed_Text"
)

type ProcessingVersion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID        uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Document          *Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"document,omitempty"`
	VersionNumber     int       `gorm:"column:version_number;not null;default:1" json:"version_number"`
	Status            string    `gorm:"column:status;not null;default:'Pending'" json:"status"`
	SummaryText       string    `gorm:"column:summary_text" json:"summary_text"`
	SummaryType       string    `gorm:"column:summary_type" json:"summary_type"`
	SummaryConfidence int       `gorm:"column:summary_confidence" json:"summary_confidence"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (ProcessingVersion) TableName() string { return "processing_versions" }
