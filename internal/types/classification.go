package types

import (
	"time"

	"github.com/google/uuid"
)

type DocumentClassification struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_classifications_version_label" json:"processing_version_id"`
	Label               string    `gorm:"column:label;not null;uniqueIndex:idx_classifications_version_label" json:"label"`
	Confidence          int       `gorm:"column:confidence;not null" json:"confidence"`
	ClassifierType      string    `gorm:"column:classifier_type" json:"classifier_type"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (DocumentClassification) TableName() string { return "document_classifications" }

// ClassificationExample is a few-shot example attached to a version by the
// API before enqueueing. Read-only for the worker.
type ClassificationExample struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessingVersionID uuid.UUID `gorm:"type:uuid;not null;index" json:"processing_version_id"`
	ExampleText         string    `gorm:"column:example_text;not null" json:"example_text"`
	ExampleLabel        string    `gorm:"column:example_label;not null" json:"example_label"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (ClassificationExample) TableName() string { return "classification_examples" }
