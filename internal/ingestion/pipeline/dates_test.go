package pipeline

import (
	"fmt"
	"testing"
	"time"
)

func TestExtractDueDateISO(t *testing.T) {
	got := extractDueDate("entrega prevista para 2025-09-15 sem falta")
	if got == nil || *got != "2025-09-15" {
		t.Fatalf("expected 2025-09-15, got %v", got)
	}
}

func TestExtractDueDateSlash(t *testing.T) {
	// Day-first convention.
	got := extractDueDate("prazo final 05/09/2025")
	if got == nil || *got != "2025-09-05" {
		t.Fatalf("expected 2025-09-05, got %v", got)
	}
}

func TestExtractDueDatePortuguese(t *testing.T) {
	got := extractDueDate("Maria precisa enviar o relatório até 15 de setembro de 2025")
	if got == nil || *got != "2025-09-15" {
		t.Fatalf("expected 2025-09-15, got %v", got)
	}
}

func TestExtractDueDatePortugueseNoYear(t *testing.T) {
	got := extractDueDate("enviar até 3 de março")
	want := fmt.Sprintf("%04d-03-03", time.Now().Year())
	if got == nil || *got != want {
		t.Fatalf("expected %s, got %v", want, got)
	}
}

func TestExtractDueDateEnglishMonthFirst(t *testing.T) {
	got := extractDueDate("deliver the report by September 15, 2025")
	if got == nil || *got != "2025-09-15" {
		t.Fatalf("expected 2025-09-15, got %v", got)
	}
}

func TestExtractDueDateEnglishDayFirst(t *testing.T) {
	got := extractDueDate("deliver by 15 September 2025")
	if got == nil || *got != "2025-09-15" {
		t.Fatalf("expected 2025-09-15, got %v", got)
	}
}

func TestExtractDueDateNone(t *testing.T) {
	if got := extractDueDate("sem data nenhuma aqui"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}
