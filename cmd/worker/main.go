package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/docsense-backend/internal/clients/inference"
	"github.com/yungbote/docsense-backend/internal/clients/queue"
	"github.com/yungbote/docsense-backend/internal/data/db"
	"github.com/yungbote/docsense-backend/internal/data/repos"
	"github.com/yungbote/docsense-backend/internal/ingestion/extractor"
	"github.com/yungbote/docsense-backend/internal/ingestion/pipeline"
	"github.com/yungbote/docsense-backend/internal/jobs/consumer"
	"github.com/yungbote/docsense-backend/internal/platform/envutil"
	"github.com/yungbote/docsense-backend/internal/platform/logger"
)

func main() {
	logMode := envutil.GetEnv("LOG_MODE", "development", nil)
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting ingestion worker")

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	gdb := postgresService.DB()
	if err := db.AutoMigrateAll(gdb); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}

	allRepos := repos.New(gdb, log)

	inferenceClient := inference.NewFromEnv()
	providers := pipeline.Providers{
		Embedder:          inferenceClient,
		Summarizer:        inferenceClient,
		TopicExtractor:    inferenceClient,
		EntityRecognizer:  inferenceClient,
		Classifier:        inferenceClient,
		FinanceRecognizer: inferenceClient,
	}

	p := pipeline.New(gdb, log, allRepos, extractor.New(log), providers)

	ingestQueue, err := queue.NewIngestQueue()
	if err != nil {
		log.Fatal("Queue init failed", "error", err)
	}
	defer ingestQueue.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := consumer.New(ingestQueue, p, log)
	if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Consumer exited", "error", err)
	}
	log.Info("Ingestion worker stopped")
}
