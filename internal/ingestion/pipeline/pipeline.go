package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/data/repos"
	"github.com/yungbote/docsense-backend/internal/ingestion/chunker"
	"github.com/yungbote/docsense-backend/internal/ingestion/extractor"
	"github.com/yungbote/docsense-backend/internal/platform/logger"
	"github.com/yungbote/docsense-backend/internal/types"
)

const (
	summaryType       = "abstractive"
	summaryConfidence = 90

	classificationThreshold = 0.6
	classifierType          = "zero-shot"
)

// Pipeline turns one (document, version) ingestion job into a committed set
// of derived records. All writes for a job happen inside a single
// transaction: the job either fully commits or leaves nothing behind.
type Pipeline struct {
	db        *gorm.DB
	log       *logger.Logger
	repos     *repos.Repos
	extractor *extractor.Extractor
	resolver  *Resolver
	providers Providers
}

func New(db *gorm.DB, baseLog *logger.Logger, r *repos.Repos, ex *extractor.Extractor, providers Providers) *Pipeline {
	return &Pipeline{
		db:        db,
		log:       baseLog.With("component", "IngestionPipeline"),
		repos:     r,
		extractor: ex,
		resolver:  NewResolver(providers.EntityRecognizer),
		providers: providers,
	}
}

// ProcessJob executes the full pipeline for one queue message. A missing raw
// file drops the job without touching the version. Everything else runs in
// one transaction; any stage or persistence error rolls the whole job back.
func (p *Pipeline) ProcessJob(ctx context.Context, documentID, versionID uuid.UUID) error {
	jobLog := p.log.With("document_id", documentID, "processing_version_id", versionID)

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		raw, err := p.repos.RawFiles.GetByVersionID(ctx, tx, versionID)
		if err != nil {
			return fmt.Errorf("load raw file: %w", err)
		}
		if raw == nil {
			jobLog.Warn("No raw file found for version, dropping job")
			return nil
		}

		extracted, err := p.extractor.Extract(ctx, raw.FileName, raw.MimeType, raw.Content)
		if err != nil {
			return fmt.Errorf("format extraction: %w", err)
		}

		if extracted.Kind == extractor.KindTabular {
			if err := p.processTabular(ctx, tx, versionID, raw.FileName, raw.Content); err != nil {
				return err
			}
		} else {
			if err := p.processText(ctx, tx, versionID, extracted.Text); err != nil {
				return err
			}
		}

		jobLog.Info("Ingestion job processed")
		return nil
	})
}

// processText is the staged analysis sequence over a chunked document.
func (p *Pipeline) processText(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, text string) error {
	chunkTexts := chunker.SplitDefault(text)
	if len(chunkTexts) == 0 {
		// Terminal no-content failure: the status write is the only thing
		// that commits.
		return p.repos.ProcessingVersions.UpdateStatus(ctx, tx, versionID, types.StatusFailedNoContent)
	}

	rows := make([]*types.Chunk, 0, len(chunkTexts))
	for i, chunkText := range chunkTexts {
		rows = append(rows, &types.Chunk{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			TextContent:         chunkText,
			Position:            i,
			TokenCount:          chunker.WordCount(chunkText),
		})
	}
	if _, err := p.repos.Chunks.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("persist chunks: %w", err)
	}

	// Re-read in position order: the stored rows are the canonical working
	// set for every stage below.
	chunks, err := p.repos.Chunks.GetByVersionID(ctx, tx, versionID)
	if err != nil {
		return fmt.Errorf("reload chunks: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.TextContent
	}
	fullText := strings.Join(texts, " ")

	examples, err := p.loadExamples(ctx, tx, versionID)
	if err != nil {
		return fmt.Errorf("load classification examples: %w", err)
	}

	embeddings, err := p.embedChunks(ctx, tx, chunks, texts)
	if err != nil {
		return fmt.Errorf("embedding stage: %w", err)
	}

	if err := p.extractTopics(ctx, tx, versionID, texts, embeddings); err != nil {
		return fmt.Errorf("topic stage: %w", err)
	}

	if err := p.summarize(ctx, tx, versionID, fullText); err != nil {
		return fmt.Errorf("summary stage: %w", err)
	}

	if err := p.persistActionItems(ctx, tx, versionID, fullText); err != nil {
		return fmt.Errorf("action item stage: %w", err)
	}

	if err := p.extractKnowledgeGraph(ctx, tx, versionID, chunks); err != nil {
		return fmt.Errorf("knowledge graph stage: %w", err)
	}

	domains, err := p.classify(ctx, tx, versionID, fullText, examples)
	if err != nil {
		return fmt.Errorf("classification stage: %w", err)
	}

	for _, domain := range domains {
		switch domain {
		case DomainFinance:
			if err := p.runFinanceBranch(ctx, tx, versionID, fullText); err != nil {
				return fmt.Errorf("finance branch: %w", err)
			}
		}
	}

	return p.repos.ProcessingVersions.UpdateStatus(ctx, tx, versionID, types.StatusProcessedText)
}

func (p *Pipeline) loadExamples(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]LabeledExample, error) {
	stored, err := p.repos.ClassificationExamples.GetByVersionID(ctx, tx, versionID)
	if err != nil {
		return nil, err
	}
	examples := make([]LabeledExample, 0, len(stored))
	for _, ex := range stored {
		examples = append(examples, LabeledExample{Text: ex.ExampleText, Label: ex.ExampleLabel})
	}
	if len(examples) > 0 {
		p.log.Info("Using few-shot classification examples", "processing_version_id", versionID, "count", len(examples))
	}
	return examples, nil
}

// embedChunks makes one batch call for all chunk texts and persists one
// vector per chunk.
func (p *Pipeline) embedChunks(ctx context.Context, tx *gorm.DB, chunks []*types.Chunk, texts []string) ([][]float32, error) {
	embeddings, err := p.providers.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}
	for i, chunk := range chunks {
		raw, err := json.Marshal(embeddings[i])
		if err != nil {
			return nil, err
		}
		if err := p.repos.Chunks.UpdateEmbedding(ctx, tx, chunk.ID, datatypes.JSON(raw)); err != nil {
			return nil, err
		}
	}
	return embeddings, nil
}

func (p *Pipeline) extractTopics(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, texts []string, embeddings [][]float32) error {
	topics, err := p.providers.TopicExtractor.Topics(ctx, texts, embeddings)
	if err != nil {
		return err
	}
	rows := make([]*types.Topic, 0, len(topics))
	for _, topic := range topics {
		rows = append(rows, &types.Topic{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			TopicText:           topic.Text,
			Weight:              topic.Weight,
			TopicType:           topic.Type,
		})
	}
	return p.repos.Topics.Create(ctx, tx, rows)
}

func (p *Pipeline) summarize(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fullText string) error {
	summary, err := p.providers.Summarizer.Summarize(ctx, fullText)
	if err != nil {
		return err
	}
	return p.repos.ProcessingVersions.UpdateSummary(ctx, tx, versionID, summary, summaryType, summaryConfidence)
}

func (p *Pipeline) persistActionItems(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fullText string) error {
	items, err := extractActionItems(ctx, p.providers.EntityRecognizer, fullText)
	if err != nil {
		return err
	}
	rows := make([]*types.ActionItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, &types.ActionItem{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			TaskText:            item.TaskText,
			OriginalText:        item.OriginalText,
			AssigneeName:        item.AssigneeName,
			DueDate:             item.DueDate,
			Confidence:          item.Confidence,
			Priority:            item.Priority,
			Dependencies:        datatypes.JSON([]byte("[]")),
		})
	}
	return p.repos.ActionItems.Create(ctx, tx, rows)
}

// extractKnowledgeGraph resolves entities to stable identities and persists
// mentions and relationships against them. Mentions and relationships whose
// endpoints did not resolve in this job are dropped silently.
func (p *Pipeline) extractKnowledgeGraph(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, chunks []*types.Chunk) error {
	refs := make([]chunkRef, len(chunks))
	for i, c := range chunks {
		refs[i] = chunkRef{ID: c.ID, Text: c.TextContent}
	}
	graph, err := p.resolver.ExtractGraph(ctx, refs)
	if err != nil {
		return err
	}

	identities := make(map[entityKey]uuid.UUID, len(graph.Entities))
	for _, key := range graph.Entities {
		entity, err := p.repos.Entities.Upsert(ctx, tx, key.Name, key.Type)
		if err != nil {
			return fmt.Errorf("upsert entity %q/%s: %w", key.Name, key.Type, err)
		}
		identities[key] = entity.ID
	}

	mentions := make([]*types.EntityMention, 0, len(graph.Mentions))
	for _, m := range graph.Mentions {
		entityID, ok := identities[m.Entity]
		if !ok {
			continue
		}
		mentions = append(mentions, &types.EntityMention{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			ChunkID:             m.ChunkID,
			EntityID:            entityID,
			MentionedText:       m.MentionedText,
			Confidence:          int(math.Round(m.Score * 100)),
		})
	}
	if err := p.repos.EntityMentions.Create(ctx, tx, mentions); err != nil {
		return err
	}

	idsByName := entityIDsByName(graph.Entities, identities)
	relationships := make([]*types.Relationship, 0, len(graph.Relationships))
	for _, rel := range graph.Relationships {
		sourceID, okSource := idsByName[rel.SourceName]
		targetID, okTarget := idsByName[rel.TargetName]
		if !okSource || !okTarget {
			continue
		}
		relationships = append(relationships, &types.Relationship{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			SourceEntityID:      sourceID,
			TargetEntityID:      targetID,
			RelationshipType:    rel.RelType,
			ContextSnippet:      rel.Context,
		})
	}
	return p.repos.Relationships.Create(ctx, tx, relationships)
}

// entityIDsByName maps each entity name onto the identity of its
// first-sighted (name, type) pair, so a name appearing under two types always
// resolves the same way.
func entityIDsByName(keys []entityKey, identities map[entityKey]uuid.UUID) map[string]uuid.UUID {
	out := make(map[string]uuid.UUID, len(keys))
	for _, key := range keys {
		if _, ok := out[key.Name]; ok {
			continue
		}
		if id, ok := identities[key]; ok {
			out[key.Name] = id
		}
	}
	return out
}

// classify persists every label scoring above the threshold and returns the
// recognized domains among the persisted labels, each domain at most once so
// conditional branches run exactly once per job.
func (p *Pipeline) classify(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fullText string, examples []LabeledExample) ([]DocumentDomain, error) {
	scores, err := p.providers.Classifier.Classify(ctx, fullText, CandidateLabels(), examples)
	if err != nil {
		return nil, err
	}

	var domains []DocumentDomain
	seen := make(map[DocumentDomain]bool)
	for _, score := range scores {
		if score.Score <= classificationThreshold {
			continue
		}
		err := p.repos.Classifications.CreateIgnoreDuplicate(ctx, tx, &types.DocumentClassification{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			Label:               score.Label,
			Confidence:          int(math.Round(score.Score * 100)),
			ClassifierType:      classifierType,
		})
		if err != nil {
			return nil, err
		}
		if domain, ok := DomainFromLabel(score.Label); ok && !seen[domain] {
			seen[domain] = true
			domains = append(domains, domain)
		}
	}
	return domains, nil
}

// runFinanceBranch is the conditional vertical: finance NER (logged only),
// KPI extraction and risk analysis, each over the full text, once per job.
func (p *Pipeline) runFinanceBranch(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, fullText string) error {
	financialEntities, err := p.providers.FinanceRecognizer.FinancialEntities(ctx, fullText)
	if err != nil {
		return fmt.Errorf("finance ner: %w", err)
	}
	p.log.Info("Finance branch: detected financial entities",
		"processing_version_id", versionID, "count", len(financialEntities))

	kpis := extractKPIs(fullText)
	rows := make([]*types.FinancialKPI, 0, len(kpis))
	for _, kpi := range kpis {
		rows = append(rows, &types.FinancialKPI{
			ID:                  uuid.New(),
			ProcessingVersionID: versionID,
			KPIName:             kpi.Name,
			KPIValue:            kpi.Value,
			KPICurrency:         kpi.Currency,
			SourceSnippet:       kpi.SourceSnippet,
		})
	}
	if err := p.repos.FinancialKPIs.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("persist kpis: %w", err)
	}

	risk, err := classifyRisk(ctx, p.providers.Classifier, fullText)
	if err != nil {
		return fmt.Errorf("risk classification: %w", err)
	}
	clausesJSON, err := json.Marshal(risk.Clauses)
	if err != nil {
		return err
	}
	return p.repos.FinancialRisk.Create(ctx, tx, &types.FinancialRiskAnalysis{
		ID:                  uuid.New(),
		ProcessingVersionID: versionID,
		RiskLevel:           risk.Level,
		Confidence:          risk.Confidence,
		Summary:             risk.Summary,
		IdentifiedClauses:   datatypes.JSON(clausesJSON),
	})
}
