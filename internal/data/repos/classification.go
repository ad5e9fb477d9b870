package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type DocumentClassificationRepo interface {
	CreateIgnoreDuplicate(ctx context.Context, tx *gorm.DB, classification *types.DocumentClassification) error
}

type documentClassificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentClassificationRepo(db *gorm.DB, baseLog *logger.Logger) DocumentClassificationRepo {
	return &documentClassificationRepo{db: db, log: baseLog.With("repo", "DocumentClassificationRepo")}
}

// CreateIgnoreDuplicate inserts the classification unless one already exists
// for the same (processing_version_id, label), which makes classification the
// one text-path table that stays stable across reprocessing.
func (r *documentClassificationRepo) CreateIgnoreDuplicate(ctx context.Context, tx *gorm.DB, classification *types.DocumentClassification) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "processing_version_id"}, {Name: "label"}},
			DoNothing: true,
		}).
		Create(classification).Error
}

type ClassificationExampleRepo interface {
	GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.ClassificationExample, error)
}

type classificationExampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassificationExampleRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationExampleRepo {
	return &classificationExampleRepo{db: db, log: baseLog.With("repo", "ClassificationExampleRepo")}
}

func (r *classificationExampleRepo) GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.ClassificationExample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ClassificationExample
	if err := transaction.WithContext(ctx).
		Where("processing_version_id = ?", versionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
