package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type ChunkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, chunks []*types.Chunk) ([]*types.Chunk, error)
	GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.Chunk, error)
	UpdateEmbedding(ctx context.Context, tx *gorm.DB, chunkID uuid.UUID, embedding datatypes.JSON) error
}

type chunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChunkRepo(db *gorm.DB, baseLog *logger.Logger) ChunkRepo {
	return &chunkRepo{db: db, log: baseLog.With("repo", "ChunkRepo")}
}

func (r *chunkRepo) Create(ctx context.Context, tx *gorm.DB, chunks []*types.Chunk) ([]*types.Chunk, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(chunks) == 0 {
		return []*types.Chunk{}, nil
	}

	// Keep batches small because TextContent is large
	const batchSize = 100

	if err := transaction.WithContext(ctx).CreateInBatches(chunks, batchSize).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}

// GetByVersionID returns chunks in position order; this re-read is the
// canonical working set for all downstream stages.
func (r *chunkRepo) GetByVersionID(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.Chunk, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Chunk
	if err := transaction.WithContext(ctx).
		Where("processing_version_id = ?", versionID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *chunkRepo) UpdateEmbedding(ctx context.Context, tx *gorm.DB, chunkID uuid.UUID, embedding datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Chunk{}).
		Where("id = ?", chunkID).
		Update("embedding", embedding).Error
}
