package extractor

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/docsense-backend/internal/platform/logger"
)

// Kind routes a raw file to the text pipeline or the tabular pipeline.
type Kind string

const (
	KindText    Kind = "text"
	KindTabular Kind = "tabular"
)

// MimeTypeURL is the sentinel media type the upload API uses when the
// "file" is a URL to fetch rather than uploaded bytes.
const MimeTypeURL = "text/x-url"

type Result struct {
	Kind Kind
	Text string
}

type Extractor struct {
	log        *logger.Logger
	httpClient *http.Client
}

func New(baseLog *logger.Logger) *Extractor {
	return &Extractor{
		log: baseLog.With("component", "FormatExtractor"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Extract dispatches on declared media type and file name, in a fixed order:
// tabular routing first, then the URL sentinel, then PDF, then word-processor
// documents, then a lossy UTF-8 decode of whatever is left. URL fetch
// failures are non-fatal and collapse into the empty-text (no content) case
// downstream.
func (e *Extractor) Extract(ctx context.Context, fileName, mimeType string, content []byte) (Result, error) {
	if IsTabular(fileName, mimeType) {
		return Result{Kind: KindTabular}, nil
	}

	if mimeType == MimeTypeURL {
		url := strings.TrimSpace(string(content))
		text := e.fetchURLText(ctx, url)
		return Result{Kind: KindText, Text: text}, nil
	}

	if strings.Contains(mimeType, "pdf") {
		text, err := extractPDF(content)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindText, Text: text}, nil
	}

	if strings.Contains(mimeType, "openxmlformats-officedocument") || hasWordProcessorExt(fileName) {
		text, err := extractDOCX(content)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindText, Text: text}, nil
	}

	return Result{Kind: KindText, Text: strings.ToValidUTF8(string(content), "")}, nil
}

func IsTabular(fileName, mimeType string) bool {
	name := strings.ToLower(fileName)
	if strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".xlsx") {
		return true
	}
	return strings.Contains(mimeType, "spreadsheet") || strings.Contains(mimeType, "csv")
}

func hasWordProcessorExt(fileName string) bool {
	name := strings.ToLower(fileName)
	return strings.HasSuffix(name, ".docx") || strings.HasSuffix(name, ".doc")
}
