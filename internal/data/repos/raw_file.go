package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type RawFileRepo interface {
	GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (*types.RawFile, error)
}

type rawFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRawFileRepo(db *gorm.DB, baseLog *logger.Logger) RawFileRepo {
	return &rawFileRepo{db: db, log: baseLog.With("repo", "RawFileRepo")}
}

// GetByVersionID returns (nil, nil) when no raw file exists for the version.
func (r *rawFileRepo) GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (*types.RawFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.RawFile
	err := transaction.WithContext(ctx).
		Where("processing_version_id = ?", versionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
