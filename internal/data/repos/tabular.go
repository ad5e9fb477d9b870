package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type TabularDataRepo interface {
	Create(ctx context.Context, tx *gorm.DB, data *types.TabularData) error
}

type tabularDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTabularDataRepo(db *gorm.DB, baseLog *logger.Logger) TabularDataRepo {
	return &tabularDataRepo{db: db, log: baseLog.With("repo", "TabularDataRepo")}
}

func (r *tabularDataRepo) Create(ctx context.Context, tx *gorm.DB, data *types.TabularData) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(data).Error
}
