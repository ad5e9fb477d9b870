package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date phrase recognition for due dates, Portuguese and English. This is a
// small fixed grammar, not a general date parser: ISO dates, dd/mm/yyyy,
// "15 de setembro [de 2025]" and "September 15[, 2025]" / "15 September".
var monthsByName = map[string]time.Month{
	"janeiro": time.January, "fevereiro": time.February, "março": time.March,
	"abril": time.April, "maio": time.May, "junho": time.June,
	"julho": time.July, "agosto": time.August, "setembro": time.September,
	"outubro": time.October, "novembro": time.November, "dezembro": time.December,

	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDatePattern   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	ptDatePattern      = regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+([\p{L}]+)(?:\s+de\s+(\d{4}))?`)
	enDayFirstPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)(?:,?\s+(\d{4}))?`)
	enMonthFirstParser = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?`)
)

// extractDueDate returns the first recognized date in the sentence as an ISO
// yyyy-mm-dd string, or nil. A phrase without a year gets the current year.
func extractDueDate(sentence string) *string {
	if m := isoDatePattern.FindStringSubmatch(sentence); m != nil {
		return formatDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}
	if m := slashDatePattern.FindStringSubmatch(sentence); m != nil {
		// dd/mm/yyyy, the dominant convention in the corpus
		return formatDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]))
	}
	if m := ptDatePattern.FindStringSubmatch(sentence); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok {
			return formatDate(yearOrCurrent(m[3]), month, atoi(m[1]))
		}
	}
	if m := enDayFirstPattern.FindStringSubmatch(sentence); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok {
			return formatDate(yearOrCurrent(m[3]), month, atoi(m[1]))
		}
	}
	if m := enMonthFirstParser.FindStringSubmatch(sentence); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			return formatDate(yearOrCurrent(m[3]), month, atoi(m[2]))
		}
	}
	return nil
}

func formatDate(year int, month time.Month, day int) *string {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return nil
	}
	s := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	return &s
}

func yearOrCurrent(captured string) int {
	if captured != "" {
		return atoi(captured)
	}
	return time.Now().Year()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
