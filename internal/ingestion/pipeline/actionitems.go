package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// actionTriggerPattern marks a sentence as a probable commitment. The
// alternatives cover English and Portuguese phrasings.
var actionTriggerPattern = regexp.MustCompile(`(?i)\b(responsible for|will|needs to|deve|precisa|responsável por|ficou de)\b`)

const (
	actionItemPriority   = "medium"
	actionItemConfidence = 0.85
)

type actionItemCandidate struct {
	TaskText     string
	OriginalText string
	AssigneeName *string
	DueDate      *string
	Confidence   float64
	Priority     string
}

// extractActionItems scans sentence by sentence: a trigger phrase makes the
// sentence an action item, the first person entity in it the assignee, and
// the first recognizable date phrase the due date.
func extractActionItems(ctx context.Context, recognizer EntityRecognizer, text string) ([]actionItemCandidate, error) {
	var items []actionItemCandidate
	for _, sentence := range splitSentences(text) {
		if !actionTriggerPattern.MatchString(sentence) {
			continue
		}

		recognized, err := recognizer.Entities(ctx, sentence)
		if err != nil {
			return nil, err
		}
		var assignee *string
		for _, hit := range recognized {
			if hit.Group == "PER" {
				name := hit.Word
				assignee = &name
				break
			}
		}

		task := strings.TrimSpace(sentence)
		items = append(items, actionItemCandidate{
			TaskText:     task,
			OriginalText: task,
			AssigneeName: assignee,
			DueDate:      extractDueDate(sentence),
			Confidence:   actionItemConfidence,
			Priority:     actionItemPriority,
		})
	}
	return items, nil
}
