package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

type FinancialKPIRepo interface {
	Create(ctx context.Context, tx *gorm.DB, kpis []*types.FinancialKPI) error
}

type financialKPIRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialKPIRepo(db *gorm.DB, baseLog *logger.Logger) FinancialKPIRepo {
	return &financialKPIRepo{db: db, log: baseLog.With("repo", "FinancialKPIRepo")}
}

func (r *financialKPIRepo) Create(ctx context.Context, tx *gorm.DB, kpis []*types.FinancialKPI) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(kpis) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(kpis).Error
}

type FinancialRiskAnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *types.FinancialRiskAnalysis) error
}

type financialRiskAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialRiskAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) FinancialRiskAnalysisRepo {
	return &financialRiskAnalysisRepo{db: db, log: baseLog.With("repo", "FinancialRiskAnalysisRepo")}
}

func (r *financialRiskAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.FinancialRiskAnalysis) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(analysis).Error
}
