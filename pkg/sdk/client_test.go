package lexsearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuery_SendsRequestAndDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/query" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Query   string   `json:"query"`
			Filters *Filters `json:"filters"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "oxford shoes" {
			t.Errorf("query = %q", req.Query)
		}
		if req.Filters == nil || req.Filters.Category != "Footwear" {
			t.Errorf("filters = %+v", req.Filters)
		}
		json.NewEncoder(w).Encode(Envelope{
			RequestID: "req-1",
			Intent:    IntentTextSearch,
			Summary:   "Found 2 products.",
			Hits:      []Hit{{ID: "p1", Score: 0.9}, {ID: "p2", Score: 0.4}},
			Total:     2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	env, err := c.Query(context.Background(), "oxford shoes", &Filters{Category: "Footwear"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Intent != IntentTextSearch || len(env.Hits) != 2 {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestQuery_APIErrorMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "retrieval_unavailable",
			"message": "retrieval backend unavailable",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Query(context.Background(), "shoes", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrRetrievalUnavailable) {
		t.Errorf("expected ErrRetrievalUnavailable, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "retrieval_unavailable" {
		t.Errorf("expected APIError with code, got %v", err)
	}
}

func TestQuery_BadRequestSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "validation_failed", "message": "bad filters"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Query(context.Background(), "shoes", nil)
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestSearchImage(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search/image" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) != len(payload) {
			t.Errorf("expected raw image body, got %d bytes", len(body))
		}
		json.NewEncoder(w).Encode(ImageSearchResult{Hits: []Hit{{ID: "p1", Score: 0.8}}})
	}))
	defer srv.Close()

	res, err := New(srv.URL).SearchImage(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0].ID != "p1" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestHealth_DegradedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthReport{
			Status: "degraded",
			Checks: map[string]string{"retrieval": "error"},
		})
	}))
	defer srv.Close()

	rep, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("degraded health should decode, got error: %v", err)
	}
	if rep.Status != "degraded" {
		t.Errorf("status = %q", rep.Status)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://example.test/")
	if c.baseURL != "http://example.test" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
