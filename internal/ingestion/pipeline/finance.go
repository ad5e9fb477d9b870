package pipeline

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// KPI patterns capture (name)(currency symbol)(value)(optional scale word)
// for the KPIs the finance vertical cares about, Portuguese and English.
// The scale alternation is ordered longest-first: Go regexps take the
// leftmost alternative, and "mil"/"bi" are prefixes of the larger scale
// words.
var kpiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Receita\s*Líquida|Net\s*Revenue)\s*de\s*(R\$|\$|USD)\s*([\d.,]+)\s*(milhões|milhão|bilhões|billion|million|mil|bi)?`),
	regexp.MustCompile(`(?i)(Lucro\s*Bruto|Gross\s*Profit)\s*de\s*(R\$|\$|USD)\s*([\d.,]+)\s*(milhões|milhão|bilhões|billion|million|mil|bi)?`),
	regexp.MustCompile(`(?i)(EBITDA)\s*de\s*(R\$|\$|USD)\s*([\d.,]+)\s*(milhões|milhão|bilhões|billion|million|mil|bi)?`),
}

var scaleMultipliers = map[string]float64{
	"mil":     1_000,
	"milhão":  1_000_000,
	"milhões": 1_000_000,
	"million": 1_000_000,
	"bi":      1_000_000_000,
	"bilhões": 1_000_000_000,
	"billion": 1_000_000_000,
}

type kpiCandidate struct {
	Name          string
	Value         float64
	Currency      string
	SourceSnippet string
}

// extractKPIs runs every pattern over the full text. Values use the
// Brazilian convention: "." groups thousands, "," is the decimal mark.
func extractKPIs(text string) []kpiCandidate {
	var kpis []kpiCandidate
	for _, pattern := range kpiPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			value, ok := parseKPIValue(match[3], match[4])
			if !ok {
				continue
			}
			currency := "USD"
			if match[2] == "R$" {
				currency = "BRL"
			}
			kpis = append(kpis, kpiCandidate{
				Name:          strings.Fields(match[1])[0],
				Value:         value,
				Currency:      currency,
				SourceSnippet: match[0],
			})
		}
	}
	return kpis
}

// parseKPIValue normalizes "1.234,56" to 1234.56 and applies the scale word
// multiplier when present.
func parseKPIValue(raw, scale string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if scale != "" {
		if mult, ok := scaleMultipliers[strings.ToLower(scale)]; ok {
			value *= mult
		}
	}
	return value, true
}

// Risk classification: zero-shot over the three levels plus a keyword scan
// for risk-bearing sentences.

var riskLevels = []string{"baixo risco", "médio risco", "alto risco"}

var riskKeywords = []string{
	"multa", "penalidade", "rescisão", "violação", "não conformidade",
	"penalty", "termination", "violation", "non-compliance", "breach",
}

type riskAnalysisResult struct {
	Level      string
	Confidence int
	Summary    string
	Clauses    []string
}

func classifyRisk(ctx context.Context, classifier Classifier, text string) (*riskAnalysisResult, error) {
	scores, err := classifier.Classify(ctx, text, riskLevels, nil)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("risk classifier returned no scores")
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	clauses := findRiskyClauses(text)
	return &riskAnalysisResult{
		Level:      top.Label,
		Confidence: int(math.Round(top.Score * 100)),
		Summary: fmt.Sprintf("Risco avaliado como '%s'. Encontradas %d cláusulas de risco potencial.",
			top.Label, len(clauses)),
		Clauses: clauses,
	}, nil
}

// findRiskyClauses always returns a non-nil slice so the persisted JSON
// column is an array, never null.
func findRiskyClauses(text string) []string {
	clauses := []string{}
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, keyword := range riskKeywords {
			if strings.Contains(lower, keyword) {
				clauses = append(clauses, strings.TrimSpace(sentence))
				break
			}
		}
	}
	return clauses
}
