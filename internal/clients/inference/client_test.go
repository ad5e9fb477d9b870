package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body any) *http.Response {
	raw, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

func TestEmbed(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/embeddings" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		var body embedRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body.Texts) != 2 {
			t.Fatalf("expected 2 texts, got %d", len(body.Texts))
		}
		return jsonResponse(200, embedResponse{Embeddings: [][]float32{{0.1}, {0.2}}}), nil
	})}

	c := NewWithHTTPClient("http://upstream", httpClient)
	got, err := c.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 2 || got[0][0] != 0.1 {
		t.Fatalf("unexpected embeddings: %v", got)
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(200, embedResponse{Embeddings: [][]float32{{0.1}}}), nil
	})}

	c := NewWithHTTPClient("http://upstream", httpClient)
	if _, err := c.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error on vector count mismatch")
	}
}

func TestEmbedEmptyInputSkipsCall(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected for empty input")
		return nil, nil
	})}

	c := NewWithHTTPClient("http://upstream", httpClient)
	got, err := c.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestEntitiesMapsGroups(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/ner" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(200, map[string]any{
			"entities": []map[string]any{
				{"word": "Maria", "entity_group": "PER", "score": 0.98},
			},
		}), nil
	})}

	c := NewWithHTTPClient("http://upstream", httpClient)
	got, err := c.Entities(context.Background(), "Maria chegou.")
	if err != nil {
		t.Fatalf("Entities: %v", err)
	}
	if len(got) != 1 || got[0].Word != "Maria" || got[0].Group != "PER" {
		t.Fatalf("unexpected entities: %+v", got)
	}
}

func TestClassifyUpstreamError(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(503, map[string]string{"error": "overloaded"}), nil
	})}

	c := NewWithHTTPClient("http://upstream", httpClient)
	_, err := c.Classify(context.Background(), "texto", []string{"finanças"}, nil)
	if err == nil {
		t.Fatal("expected upstream error")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 503 {
		t.Fatalf("expected HTTPError 503, got %v", err)
	}
}
