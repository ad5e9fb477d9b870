package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/yungbote/docsense-backend/internal/types"
)

// nerGroupToType maps model tags onto the coarse entity types. Tags outside
// the map are dropped.
var nerGroupToType = map[string]string{
	"PER":  types.EntityTypePerson,
	"ORG":  types.EntityTypeOrganization,
	"LOC":  types.EntityTypeLocation,
	"MISC": types.EntityTypeMiscellaneous,
}

// relationPatterns is the fixed priority list for relation inference. For
// each ordered entity pair in a sentence the first matching pattern wins and
// the rest are not evaluated for that pair.
type relationPattern struct {
	relType string
	re      *regexp.Regexp
}

var relationPatterns = []relationPattern{
	{"manages", regexp.MustCompile(`(?i)\b(manages|leads|gerencia|lidera)\b`)},
	{"collaborates_with", regexp.MustCompile(`(?i)\b(collaborates with|works with|with|junto com|com)\b`)},
}

type entityKey struct {
	Name string
	Type string
}

type mentionCandidate struct {
	ChunkID       uuid.UUID
	Entity        entityKey
	MentionedText string
	Score         float64
}

type relationCandidate struct {
	SourceName string
	TargetName string
	RelType    string
	Context    string
}

// graphComponents is everything the resolver extracted from one job, before
// database identities are assigned. Entities preserve first-sighting order
// and are already deduplicated by (name, type).
type graphComponents struct {
	Entities      []entityKey
	Mentions      []mentionCandidate
	Relationships []relationCandidate
}

type chunkRef struct {
	ID   uuid.UUID
	Text string
}

// Resolver walks chunks sentence by sentence, recognizes entities, infers
// in-sentence relations and deduplicates entities across the whole job.
type Resolver struct {
	recognizer EntityRecognizer
}

func NewResolver(recognizer EntityRecognizer) *Resolver {
	return &Resolver{recognizer: recognizer}
}

func (r *Resolver) ExtractGraph(ctx context.Context, chunks []chunkRef) (*graphComponents, error) {
	out := &graphComponents{}
	seen := map[entityKey]bool{}

	for _, chunk := range chunks {
		for _, sentence := range splitSentences(chunk.Text) {
			recognized, err := r.recognizer.Entities(ctx, sentence)
			if err != nil {
				return nil, err
			}

			var inSentence []RecognizedEntity
			for _, hit := range recognized {
				coarse, ok := nerGroupToType[hit.Group]
				if !ok {
					continue
				}
				inSentence = append(inSentence, hit)

				key := entityKey{Name: hit.Word, Type: coarse}
				if !seen[key] {
					seen[key] = true
					out.Entities = append(out.Entities, key)
				}
				out.Mentions = append(out.Mentions, mentionCandidate{
					ChunkID:       chunk.ID,
					Entity:        key,
					MentionedText: hit.Word,
					Score:         hit.Score,
				})
			}

			out.Relationships = append(out.Relationships, inferRelationships(sentence, inSentence)...)
		}
	}
	return out, nil
}

// inferRelationships tests every ordered pair of distinct entities in the
// sentence against the pattern priority list.
func inferRelationships(sentence string, entities []RecognizedEntity) []relationCandidate {
	if len(entities) < 2 {
		return nil
	}
	var out []relationCandidate
	for i, source := range entities {
		for j, target := range entities {
			if i == j {
				continue
			}
			for _, p := range relationPatterns {
				if p.re.MatchString(sentence) {
					out = append(out, relationCandidate{
						SourceName: source.Word,
						TargetName: target.Word,
						RelType:    p.relType,
						Context:    strings.TrimSpace(sentence),
					})
					break
				}
			}
		}
	}
	return out
}

// splitSentences breaks text after sentence-final punctuation followed by
// whitespace or end of text. Punctuation glued to the next character does not
// end a sentence, so decimal figures like "500.000" stay intact. Pieces
// without content are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
