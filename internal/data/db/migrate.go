package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/types"
)

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		// Uploads
		&types.Document{},
		&types.ProcessingVersion{},
		&types.RawFile{},

		// Text path derived records
		&types.Chunk{},
		&types.Topic{},
		&types.ActionItem{},

		// Knowledge graph
		&types.Entity{},
		&types.EntityMention{},
		&types.Relationship{},

		// Classification
		&types.DocumentClassification{},
		&types.ClassificationExample{},

		// Finance branch
		&types.FinancialKPI{},
		&types.FinancialRiskAnalysis{},

		// Tabular path
		&types.TabularData{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
