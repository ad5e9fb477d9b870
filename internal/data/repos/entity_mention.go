package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type EntityMentionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mentions []*types.EntityMention) error
}

type entityMentionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityMentionRepo(db *gorm.DB, baseLog *logger.Logger) EntityMentionRepo {
	return &entityMentionRepo{db: db, log: baseLog.With("repo", "EntityMentionRepo")}
}

func (r *entityMentionRepo) Create(ctx context.Context, tx *gorm.DB, mentions []*types.EntityMention) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mentions) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(mentions).Error
}
