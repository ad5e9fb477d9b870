package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/docsense-backend/internal/types"
)

// fakeRecognizer returns canned entities per sentence keyed by substring.
type fakeRecognizer struct {
	bySubstring map[string][]RecognizedEntity
}

func (f *fakeRecognizer) Entities(_ context.Context, sentence string) ([]RecognizedEntity, error) {
	for key, entities := range f.bySubstring {
		if strings.Contains(sentence, key) {
			return entities, nil
		}
	}
	return nil, nil
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Primeira frase. Segunda! Terceira? resto sem pontuação")
	want := []string{"Primeira frase.", "Segunda!", "Terceira?", "resto sem pontuação"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := splitSentences("   "); got != nil {
		t.Fatalf("expected no sentences, got %v", got)
	}
}

func TestSplitSentencesKeepsDecimalFigures(t *testing.T) {
	got := splitSentences("Maria precisa pagar a multa de R$ 500.000 amanhã.")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(got), got)
	}

	got = splitSentences("Total de 1.234,56 apurado. Próximo item.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Total de 1.234,56 apurado." {
		t.Fatalf("unexpected first sentence: %q", got[0])
	}
}

func TestExtractGraphDeduplicatesEntities(t *testing.T) {
	recognizer := &fakeRecognizer{bySubstring: map[string][]RecognizedEntity{
		"Maria": {
			{Word: "Maria", Group: "PER", Score: 0.98},
			{Word: "Acme", Group: "ORG", Score: 0.91},
		},
	}}
	resolver := NewResolver(recognizer)

	chunkA := chunkRef{ID: uuid.New(), Text: "Maria trabalha. Maria viajou."}
	chunkB := chunkRef{ID: uuid.New(), Text: "Maria voltou."}

	graph, err := resolver.ExtractGraph(context.Background(), []chunkRef{chunkA, chunkB})
	if err != nil {
		t.Fatalf("ExtractGraph: %v", err)
	}

	if len(graph.Entities) != 2 {
		t.Fatalf("expected 2 unique entities, got %d: %v", len(graph.Entities), graph.Entities)
	}
	if graph.Entities[0] != (entityKey{Name: "Maria", Type: types.EntityTypePerson}) {
		t.Fatalf("unexpected first entity: %+v", graph.Entities[0])
	}

	// Three sentences each mention both entities.
	if len(graph.Mentions) != 6 {
		t.Fatalf("expected 6 mentions, got %d", len(graph.Mentions))
	}
	for _, m := range graph.Mentions[:4] {
		if m.ChunkID != chunkA.ID {
			t.Fatalf("expected mention from first chunk, got chunk %s", m.ChunkID)
		}
	}
}

func TestExtractGraphDropsUnknownGroups(t *testing.T) {
	recognizer := &fakeRecognizer{bySubstring: map[string][]RecognizedEntity{
		"texto": {
			{Word: "algo", Group: "DATE", Score: 0.8},
		},
	}}
	resolver := NewResolver(recognizer)

	graph, err := resolver.ExtractGraph(context.Background(), []chunkRef{{ID: uuid.New(), Text: "um texto."}})
	if err != nil {
		t.Fatalf("ExtractGraph: %v", err)
	}
	if len(graph.Entities) != 0 || len(graph.Mentions) != 0 {
		t.Fatalf("expected nothing from unknown NER group, got %+v", graph)
	}
}

func TestInferRelationshipsFirstPatternWins(t *testing.T) {
	entities := []RecognizedEntity{
		{Word: "Maria", Group: "PER", Score: 0.9},
		{Word: "João", Group: "PER", Score: 0.9},
	}
	// Sentence matches both "lidera" and "com": only the higher-priority
	// pattern may fire per ordered pair.
	rels := inferRelationships("Maria lidera o projeto com João.", entities)
	if len(rels) != 2 {
		t.Fatalf("expected 2 ordered-pair relations, got %d", len(rels))
	}
	for _, rel := range rels {
		if rel.RelType != "manages" {
			t.Fatalf("expected manages to win over collaborates_with, got %q", rel.RelType)
		}
	}
	if rels[0].SourceName != "Maria" || rels[0].TargetName != "João" {
		t.Fatalf("unexpected first pair: %+v", rels[0])
	}
	if rels[1].SourceName != "João" || rels[1].TargetName != "Maria" {
		t.Fatalf("unexpected second pair: %+v", rels[1])
	}
}

func TestInferRelationshipsCollaboration(t *testing.T) {
	entities := []RecognizedEntity{
		{Word: "Maria", Group: "PER", Score: 0.9},
		{Word: "Acme", Group: "ORG", Score: 0.9},
	}
	rels := inferRelationships("Maria trabalha junto com a Acme.", entities)
	if len(rels) != 2 {
		t.Fatalf("expected 2 relations, got %d", len(rels))
	}
	if rels[0].RelType != "collaborates_with" {
		t.Fatalf("expected collaborates_with, got %q", rels[0].RelType)
	}
}

func TestInferRelationshipsNeedsTwoEntities(t *testing.T) {
	entities := []RecognizedEntity{{Word: "Maria", Group: "PER", Score: 0.9}}
	if rels := inferRelationships("Maria lidera.", entities); rels != nil {
		t.Fatalf("expected no relations with one entity, got %v", rels)
	}
}

func TestInferRelationshipsNoTrigger(t *testing.T) {
	entities := []RecognizedEntity{
		{Word: "Maria", Group: "PER", Score: 0.9},
		{Word: "João", Group: "PER", Score: 0.9},
	}
	if rels := inferRelationships("Maria viu João ontem.", entities); rels != nil {
		t.Fatalf("expected no relations without a trigger, got %v", rels)
	}
}
