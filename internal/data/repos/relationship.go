package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type RelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, relationships []*types.Relationship) error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: baseLog.With("repo", "RelationshipRepo")}
}

func (r *relationshipRepo) Create(ctx context.Context, tx *gorm.DB, relationships []*types.Relationship) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(relationships) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(relationships).Error
}
