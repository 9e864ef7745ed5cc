package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		BaseURL:    serverURL,
		HTTPClient: &http.Client{},
		apiKey:     "test-key",
		language:   "ja",
	}
}

func TestSearchQueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "golang" {
			t.Errorf("Expected query 'golang', got '%s'", q.Get("q"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("Expected api_key 'test-key', got '%s'", q.Get("api_key"))
		}
		if q.Get("engine") != "google" {
			t.Errorf("Expected engine 'google', got '%s'", q.Get("engine"))
		}
		if q.Get("hl") != "ja" {
			t.Errorf("Expected hl 'ja', got '%s'", q.Get("hl"))
		}
		if q.Get("num") != "30" {
			t.Errorf("Expected num '30', got '%s'", q.Get("num"))
		}

		w.Header().Set("Content-Type", "application/json")
		resp := providerResponse{OrganicResults: []Result{
			{Title: "Go", Snippet: "Go is a programming language.", Link: "https://go.dev"},
		}}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "golang", 30)
	if err != nil {
		t.Fatalf("Search() returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Go" {
		t.Errorf("Expected title 'Go', got '%s'", results[0].Title)
	}
}

func TestSearchCapsAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 40 results, every 4th one without a snippet
		var organic []Result
		for i := 0; i < 40; i++ {
			res := Result{
				Title: fmt.Sprintf("title-%d", i),
				Link:  fmt.Sprintf("https://example.com/%d", i),
			}
			if i%4 != 0 {
				res.Snippet = fmt.Sprintf("snippet-%d", i)
			}
			organic = append(organic, res)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(providerResponse{OrganicResults: organic}); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "test", 50)
	if err != nil {
		t.Fatalf("Search() returned error: %v", err)
	}

	// the first 30 entries are kept, then the snippet filter drops 8 of them
	if len(results) != 22 {
		t.Fatalf("Expected 22 results after cap and filter, got %d", len(results))
	}
	if results[0].Snippet != "snippet-1" {
		t.Errorf("Expected first kept snippet 'snippet-1', got '%s'", results[0].Snippet)
	}
	if results[len(results)-1].Snippet != "snippet-29" {
		t.Errorf("Expected last kept snippet 'snippet-29', got '%s'", results[len(results)-1].Snippet)
	}
}

func TestSearchCapPreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var organic []Result
		for i := 0; i < 40; i++ {
			organic = append(organic, Result{
				Title:   fmt.Sprintf("title-%d", i),
				Snippet: fmt.Sprintf("snippet-%d", i),
				Link:    fmt.Sprintf("https://example.com/%d", i),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(providerResponse{OrganicResults: organic}); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "test", 50)
	if err != nil {
		t.Fatalf("Search() returned error: %v", err)
	}
	if len(results) != 30 {
		t.Fatalf("Expected exactly 30 results, got %d", len(results))
	}
	for i, r := range results {
		want := fmt.Sprintf("title-%d", i)
		if r.Title != want {
			t.Errorf("Result %d out of order: expected '%s', got '%s'", i, want, r.Title)
		}
	}
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := providerResponse{OrganicResults: []Result{
			{Title: "no snippet here", Link: "https://example.com"},
		}}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "test", 30)
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := NewClient("key", "ja").Search(context.Background(), "", 30)
	if err == nil {
		t.Error("Expected error for empty query, got nil")
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "test", 30)
	if err == nil {
		t.Error("Expected error for HTTP 500, got nil")
	}
	if errors.Is(err, ErrNoResults) {
		t.Error("Transport error must not be reported as ErrNoResults")
	}
}

func TestSearchInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte("invalid json")); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "test", 30)
	if err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}
