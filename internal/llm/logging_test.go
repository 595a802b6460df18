package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/betopper/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`short notes`),
		Usage:   Usage{InputTokens: 7, OutputTokens: 11},
	})
	p := WithLogging(mock, "gemini", repo, nil)

	ctx := WithPurpose(context.Background(), "notes")
	if _, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Topic: Tissues"}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "gemini" || e.Purpose != "notes" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 7 || e.OutputTokens != 11 {
		t.Errorf("unexpected tokens: %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[system]\nsys") || !strings.Contains(e.RequestBody, "[user]\nTopic: Tissues") {
		t.Errorf("request body not serialized: %q", e.RequestBody)
	}
	if e.ResponseBody != "short notes" {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailureAndSummarizesImages(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Parts: []Part{{Text: "caption"}, {MIMEType: "image/png", Data: make([]byte, 1024)}}},
	)
	p := WithLogging(mock, "gemini", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := p.Generate(context.Background(), Request{Image: &ImageConfig{AspectRatio: "1:1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failed := repo.events[0]
	if failed.Success || !strings.Contains(failed.ErrorMessage, "rate limited") {
		t.Errorf("unexpected failure event: %+v", failed)
	}
	if failed.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", failed.Purpose)
	}

	img := repo.events[1]
	if img.ResponseBody != "caption\n[image/png 1024 bytes]" {
		t.Errorf("image response body = %q", img.ResponseBody)
	}
	if !strings.Contains(img.RequestBody, "[image: aspect 1:1]") {
		t.Errorf("image request body = %q", img.RequestBody)
	}
}

func TestLoggingProvider_EventWriteFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`ok`)}), "mock", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("event write failure leaked into request: %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`ok`)}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
