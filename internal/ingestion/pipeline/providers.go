package pipeline

import "context"

// Capability providers are the model-inference collaborators behind each
// analysis stage. Every call is synchronous and blocking; any error fails
// the whole job. Implementations live in internal/clients/inference.

type Topic struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
	Type   string  `json:"type"`
}

// RecognizedEntity is one grouped NER hit. Group is the model's raw tag
// (PER, ORG, LOC, MISC); Score is the model confidence in [0,1].
type RecognizedEntity struct {
	Word  string  `json:"word"`
	Group string  `json:"group"`
	Score float64 `json:"score"`
}

type LabeledExample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type TopicExtractor interface {
	Topics(ctx context.Context, texts []string, embeddings [][]float32) ([]Topic, error)
}

type EntityRecognizer interface {
	Entities(ctx context.Context, sentence string) ([]RecognizedEntity, error)
}

// Classifier is zero-shot: candidate labels come from the caller, optionally
// steered by few-shot examples already attached to the version.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string, examples []LabeledExample) ([]LabelScore, error)
}

type FinanceRecognizer interface {
	FinancialEntities(ctx context.Context, text string) ([]RecognizedEntity, error)
}

type Providers struct {
	Embedder          Embedder
	Summarizer        Summarizer
	TopicExtractor    TopicExtractor
	EntityRecognizer  EntityRecognizer
	Classifier        Classifier
	FinanceRecognizer FinanceRecognizer
}
