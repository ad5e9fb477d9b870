package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/docsense-backend/internal/data/db"
	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestEntityUpsertResolvesToOneRow(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewEntityRepo(gdb, logger.NewNop())
	ctx := context.Background()

	first, err := repo.Upsert(ctx, nil, "Maria", types.EntityTypePerson)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, nil, "Maria", types.EntityTypePerson)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same identity, got %s and %s", first.ID, second.ID)
	}

	var n int64
	if err := gdb.Model(&types.Entity{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestEntityUpsertDistinguishesTypes(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewEntityRepo(gdb, logger.NewNop())
	ctx := context.Background()

	person, err := repo.Upsert(ctx, nil, "Amazonas", types.EntityTypeLocation)
	if err != nil {
		t.Fatalf("upsert location: %v", err)
	}
	org, err := repo.Upsert(ctx, nil, "Amazonas", types.EntityTypeOrganization)
	if err != nil {
		t.Fatalf("upsert organization: %v", err)
	}
	if person.ID == org.ID {
		t.Fatal("same name with different types must be distinct entities")
	}
}

func TestClassificationCreateIgnoreDuplicate(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDocumentClassificationRepo(gdb, logger.NewNop())
	ctx := context.Background()

	doc := &types.Document{ID: uuid.New(), FileName: "x.txt"}
	if err := gdb.Create(doc).Error; err != nil {
		t.Fatalf("seed document: %v", err)
	}
	version := &types.ProcessingVersion{ID: uuid.New(), DocumentID: doc.ID, VersionNumber: 1, Status: types.StatusPending}
	if err := gdb.Create(version).Error; err != nil {
		t.Fatalf("seed version: %v", err)
	}

	for i := 0; i < 2; i++ {
		err := repo.CreateIgnoreDuplicate(ctx, nil, &types.DocumentClassification{
			ID:                  uuid.New(),
			ProcessingVersionID: version.ID,
			Label:               "finanças",
			Confidence:          95,
			ClassifierType:      "zero-shot",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i+1, err)
		}
	}

	var n int64
	if err := gdb.Model(&types.DocumentClassification{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected duplicate label ignored, got %d rows", n)
	}
}
