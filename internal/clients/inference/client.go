package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/docsense-backend/internal/ingestion/pipeline"
	"github.com/yungbote/docsense-backend/internal/platform/envutil"
)

// Client talks to the model-inference service over HTTP/JSON and implements
// every capability provider the pipeline consumes.
type Client struct {
	baseURL string
	timeout time.Duration

	embeddingModel  string
	summaryModel    string
	nerModel        string
	zeroShotModel   string
	financeNERModel string

	httpClient *http.Client
}

func NewFromEnv() *Client {
	timeout := time.Duration(envutil.GetEnvAsInt("INFERENCE_TIMEOUT_SECONDS", 60, nil)) * time.Second

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL:         strings.TrimRight(envutil.GetEnv("INFERENCE_BASE_URL", "http://localhost:8090", nil), "/"),
		timeout:         timeout,
		embeddingModel:  envutil.GetEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2", nil),
		summaryModel:    envutil.GetEnv("SUMMARY_MODEL", "Falconsai/text_summarization", nil),
		nerModel:        envutil.GetEnv("NER_MODEL", "dslim/bert-base-NER", nil),
		zeroShotModel:   envutil.GetEnv("ZERO_SHOT_MODEL", "facebook/bart-large-mnli", nil),
		financeNERModel: envutil.GetEnv("FINANCE_NER_MODEL", "Jean-Baptiste/roberta-large-ner-english", nil),
		httpClient:      &http.Client{Transport: tr},
	}
}

// NewWithHTTPClient is intended for tests; it avoids network access by using
// a custom transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := NewFromEnv()
	c.baseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// ---------------- Embeddings ----------------

type embedRequest struct {
	Model string   `json:"model"`
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	var resp embedResponse
	err := c.doJSON(ctx, "/v1/embeddings", embedRequest{Model: c.embeddingModel, Texts: texts}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d texts", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// ---------------- Summarization ----------------

type summarizeRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	var resp summarizeResponse
	err := c.doJSON(ctx, "/v1/summarize", summarizeRequest{Model: c.summaryModel, Text: text}, &resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Summary), nil
}

// ---------------- Topics ----------------

type topicsRequest struct {
	Texts      []string    `json:"texts"`
	Embeddings [][]float32 `json:"embeddings,omitempty"`
}

type topicsResponse struct {
	Topics []pipeline.Topic `json:"topics"`
}

func (c *Client) Topics(ctx context.Context, texts []string, embeddings [][]float32) ([]pipeline.Topic, error) {
	var resp topicsResponse
	err := c.doJSON(ctx, "/v1/topics", topicsRequest{Texts: texts, Embeddings: embeddings}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

// ---------------- NER ----------------

type nerRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type nerResponse struct {
	Entities []struct {
		Word  string  `json:"word"`
		Group string  `json:"entity_group"`
		Score float64 `json:"score"`
	} `json:"entities"`
}

func (c *Client) ner(ctx context.Context, model, text string) ([]pipeline.RecognizedEntity, error) {
	var resp nerResponse
	if err := c.doJSON(ctx, "/v1/ner", nerRequest{Model: model, Text: text}, &resp); err != nil {
		return nil, err
	}
	out := make([]pipeline.RecognizedEntity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		out = append(out, pipeline.RecognizedEntity{Word: e.Word, Group: e.Group, Score: e.Score})
	}
	return out, nil
}

func (c *Client) Entities(ctx context.Context, sentence string) ([]pipeline.RecognizedEntity, error) {
	return c.ner(ctx, c.nerModel, sentence)
}

func (c *Client) FinancialEntities(ctx context.Context, text string) ([]pipeline.RecognizedEntity, error) {
	return c.ner(ctx, c.financeNERModel, text)
}

// ---------------- Zero-shot classification ----------------

type classifyRequest struct {
	Model    string                    `json:"model"`
	Text     string                    `json:"text"`
	Labels   []string                  `json:"labels"`
	Examples []pipeline.LabeledExample `json:"examples,omitempty"`
}

type classifyResponse struct {
	Scores []pipeline.LabelScore `json:"scores"`
}

func (c *Client) Classify(ctx context.Context, text string, labels []string, examples []pipeline.LabeledExample) ([]pipeline.LabelScore, error) {
	var resp classifyResponse
	err := c.doJSON(ctx, "/v1/zero-shot", classifyRequest{
		Model:    c.zeroShotModel,
		Text:     text,
		Labels:   labels,
		Examples: examples,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Scores, nil
}

// ---------------- HTTP helpers ----------------

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("inference: upstream status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) doJSON(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, "POST", c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var (
	_ pipeline.Embedder          = (*Client)(nil)
	_ pipeline.Summarizer        = (*Client)(nil)
	_ pipeline.TopicExtractor    = (*Client)(nil)
	_ pipeline.EntityRecognizer  = (*Client)(nil)
	_ pipeline.Classifier        = (*Client)(nil)
	_ pipeline.FinanceRecognizer = (*Client)(nil)
)
