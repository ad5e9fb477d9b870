package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
)

// Repos bundles every repository the ingestion worker touches so wiring in
// cmd/worker stays a single call.
type Repos struct {
	RawFiles               RawFileRepo
	ProcessingVersions     ProcessingVersionRepo
	Chunks                 ChunkRepo
	Topics                 TopicRepo
	ActionItems            ActionItemRepo
	Entities               EntityRepo
	EntityMentions         EntityMentionRepo
	Relationships          RelationshipRepo
	Classifications        DocumentClassificationRepo
	ClassificationExamples ClassificationExampleRepo
	FinancialKPIs          FinancialKPIRepo
	FinancialRisk          FinancialRiskAnalysisRepo
	TabularData            TabularDataRepo
}

func New(db *gorm.DB, baseLog *logger.Logger) *Repos {
	return &Repos{
		RawFiles:               NewRawFileRepo(db, baseLog),
		ProcessingVersions:     NewProcessingVersionRepo(db, baseLog),
		Chunks:                 NewChunkRepo(db, baseLog),
		Topics:                 NewTopicRepo(db, baseLog),
		ActionItems:            NewActionItemRepo(db, baseLog),
		Entities:               NewEntityRepo(db, baseLog),
		EntityMentions:         NewEntityMentionRepo(db, baseLog),
		Relationships:          NewRelationshipRepo(db, baseLog),
		Classifications:        NewDocumentClassificationRepo(db, baseLog),
		ClassificationExamples: NewClassificationExampleRepo(db, baseLog),
		FinancialKPIs:          NewFinancialKPIRepo(db, baseLog),
		FinancialRisk:          NewFinancialRiskAnalysisRepo(db, baseLog),
		TabularData:            NewTabularDataRepo(db, baseLog),
	}
}
