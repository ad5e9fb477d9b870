package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type ProcessingVersionRepo interface {
	UpdateStatus(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, status string) error
	UpdateSummary(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, text, summaryType string, confidence int) error
}

type processingVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcessingVersionRepo(db *gorm.DB, baseLog *logger.Logger) ProcessingVersionRepo {
	return &processingVersionRepo{db: db, log: baseLog.With("repo", "ProcessingVersionRepo")}
}

func (r *processingVersionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ProcessingVersion{}).
		Where("id = ?", versionID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *processingVersionRepo) UpdateSummary(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, text, summaryType string, confidence int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ProcessingVersion{}).
		Where("id = ?", versionID).
		Updates(map[string]any{
			"summary_text":       text,
			"summary_type":       summaryType,
			"summary_confidence": confidence,
			"updated_at":         time.Now(),
		}).Error
}
