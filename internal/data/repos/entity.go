package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type EntityRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, name, entityType string) (*types.Entity, error)
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return &entityRepo{db: db, log: baseLog.With("repo", "EntityRepo")}
}

// Upsert inserts the entity or resolves to the existing row for the same
// (name, entity_type) pair. The conflict target is the unique index on those
// two columns, so concurrent workers racing on the same entity both land on
// one row.
func (r *entityRepo) Upsert(ctx context.Context, tx *gorm.DB, name, entityType string) (*types.Entity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	candidate := &types.Entity{
		ID:         uuid.New(),
		Name:       name,
		EntityType: entityType,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "entity_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	// Re-read to get the database-resolved identity; on conflict the insert
	// above does not report back the surviving row's id.
	var resolved types.Entity
	if err := transaction.WithContext(ctx).
		Where("name = ? AND entity_type = ?", name, entityType).
		First(&resolved).Error; err != nil {
		return nil, err
	}
	return &resolved, nil
}
