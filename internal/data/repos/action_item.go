package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type ActionItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.ActionItem) error
}

type actionItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionItemRepo(db *gorm.DB, baseLog *logger.Logger) ActionItemRepo {
	return &actionItemRepo{db: db, log: baseLog.With("repo", "ActionItemRepo")}
}

func (r *actionItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ActionItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(items).Error
}
