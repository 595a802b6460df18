package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/betopper/internal/curriculum"
	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/prompts"
)

// purposeRecorder captures the purpose label each call carried.
type purposeRecorder struct {
	*llm.MockProvider
	purposes []string
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return p.MockProvider.Generate(ctx, req)
}

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

var testRoutes = llm.ModelRoutes{Text: "text-model", Structured: "json-model", Image: "image-model"}

func mustNotes(t *testing.T) *prompts.Request {
	t.Helper()
	req, err := prompts.Notes(prompts.Params{Class: curriculum.Class10, Subject: "Physics", Topic: "Optics"})
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestGenerateText_RoutesAndPurpose(t *testing.T) {
	rec := &purposeRecorder{MockProvider: llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("notes body")})}
	g := New(rec, Options{Routes: testRoutes})

	req := mustNotes(t)
	got, err := g.GenerateText(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "notes body" {
		t.Errorf("got %q", got)
	}

	call := rec.Calls[0]
	if call.Model != "text-model" {
		t.Errorf("model = %q, want text-model", call.Model)
	}
	if call.Schema != nil || call.Image != nil {
		t.Error("text call should carry no schema or image config")
	}
	if len(call.Messages) != 1 || call.Messages[0].Role != llm.RoleUser || call.Messages[0].Content != req.Instruction {
		t.Errorf("unexpected messages: %+v", call.Messages)
	}
	if rec.purposes[0] != "notes" {
		t.Errorf("purpose = %q, want notes", rec.purposes[0])
	}
}

func TestGenerateStructured(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})
	g := New(mock, Options{Routes: testRoutes})

	req, err := prompts.QuestionBank(prompts.Params{
		Class: curriculum.Class11, Subject: "Chemistry", Topic: "Mole Concept", Difficulty: curriculum.DifficultyHigh,
	})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := g.GenerateStructured(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("raw = %s", raw)
	}
	call := mock.Calls[0]
	if call.Schema != prompts.QuestionItemsSchema {
		t.Error("schema not forwarded")
	}
	if call.Model != "json-model" {
		t.Errorf("model = %q, want json-model", call.Model)
	}
}

func TestGenerateStructured_DiagramRoute(t *testing.T) {
	req, err := prompts.Diagram(curriculum.Class10, "Human Heart")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		routes llm.ModelRoutes
		want   string
	}{
		{"diagram route", llm.ModelRoutes{Structured: "json-model", Diagram: "flash-model"}, "flash-model"},
		{"falls back to structured", llm.ModelRoutes{Structured: "json-model"}, "json-model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{}`)})
			g := New(mock, Options{Routes: tt.routes})
			if _, err := g.GenerateStructured(context.Background(), req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := mock.Calls[0].Model; got != tt.want {
				t.Errorf("model = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateStructured_NoSchema(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, Options{})
	if _, err := g.GenerateStructured(context.Background(), mustNotes(t)); err == nil {
		t.Fatal("expected error for request without schema")
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called")
	}
}

func TestGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	rec := &purposeRecorder{MockProvider: llm.NewMockProvider(llm.MockResponse{
		Parts: []llm.Part{{Text: "here you go"}, {MIMEType: "image/png", Data: png}},
	})}
	g := New(rec, Options{Routes: testRoutes})

	req, err := prompts.Diagram(curriculum.Class9, "Human Heart")
	if err != nil {
		t.Fatal(err)
	}
	parts, err := g.GenerateImage(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 2 || !parts[1].IsInline() {
		t.Fatalf("unexpected parts: %+v", parts)
	}

	call := rec.Calls[0]
	if call.Image == nil || call.Image.AspectRatio != "1:1" {
		t.Errorf("image config = %+v", call.Image)
	}
	if call.Model != "image-model" {
		t.Errorf("model = %q, want image-model", call.Model)
	}
	if call.Messages[0].Content != req.Image.Prompt {
		t.Error("image prompt not sent")
	}
	if rec.purposes[0] != "diagram-image" {
		t.Errorf("purpose = %q", rec.purposes[0])
	}
}

func TestConverseTurn_HistoryOrdering(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("Osmosis is...")})
	g := New(mock, Options{})

	s := NewSession("English")
	s.History = []llm.Message{
		{Role: llm.RoleUser, Content: "q1"},
		{Role: llm.RoleAssistant, Content: "a1"},
		{Role: llm.RoleUser, Content: "q2"},
		{Role: llm.RoleAssistant, Content: "a2"},
		{Role: llm.RoleUser, Content: "q3"},
		{Role: llm.RoleAssistant, Content: "a3"},
	}

	reply, err := g.ConverseTurn(context.Background(), s, "what is osmosis?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Osmosis is..." {
		t.Errorf("reply = %q", reply)
	}

	call := mock.Calls[0]
	if len(call.Messages) != 7 {
		t.Fatalf("sent %d messages, want 7", len(call.Messages))
	}
	for i := 0; i < 6; i++ {
		wantRole := llm.RoleUser
		if i%2 == 1 {
			wantRole = llm.RoleAssistant
		}
		if call.Messages[i].Role != wantRole {
			t.Errorf("message %d role = %s, want %s", i, call.Messages[i].Role, wantRole)
		}
	}
	if last := call.Messages[6]; last.Role != llm.RoleUser || last.Content != "what is osmosis?" {
		t.Errorf("last message = %+v", last)
	}
	if call.System == "" {
		t.Error("expected system instruction")
	}

	if s.Exchanges() != 4 {
		t.Errorf("exchanges = %d, want 4", s.Exchanges())
	}
	if s.History[7].Role != llm.RoleAssistant || s.History[7].Content != "Osmosis is..." {
		t.Errorf("reply not recorded: %+v", s.History[7])
	}
}

func TestConverseTurn_BlankReplyRecordsFallback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("  ")},
		llm.MockResponse{Content: json.RawMessage("Sure.")},
	)
	g := New(mock, Options{})
	s := NewSession("English")
	s.Fallback = "Sorry, I missed that."

	reply, err := g.ConverseTurn(context.Background(), s, "one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != s.Fallback {
		t.Errorf("reply = %q, want fallback", reply)
	}
	if _, err := g.ConverseTurn(context.Background(), s, "two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := mock.Calls[1].Messages
	if len(sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(sent))
	}
	if sent[1].Role != llm.RoleAssistant || sent[1].Content != "Sorry, I missed that." {
		t.Errorf("assistant turn = %+v, want fallback text", sent[1])
	}
}

func TestConverseTurn_FailureLeavesSession(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}})
	g := New(mock, Options{})
	s := NewSession("")

	_, err := g.ConverseTurn(context.Background(), s, "hello")
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if gwErr.Kind != KindRateLimit {
		t.Errorf("kind = %s, want rate_limit", gwErr.Kind)
	}
	if len(s.History) != 0 {
		t.Errorf("history should be unchanged, got %d entries", len(s.History))
	}
	if s.Language != prompts.DefaultLanguage {
		t.Errorf("language = %q", s.Language)
	}
}

func TestConverseTurn_EmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, Options{})
	_, err := g.ConverseTurn(context.Background(), NewSession("English"), "  ")
	if !errors.Is(err, prompts.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called")
	}
}

func TestTimeout(t *testing.T) {
	g := New(blockingProvider{}, Options{Timeout: 10 * time.Millisecond})
	_, err := g.GenerateText(context.Background(), mustNotes(t))
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if gwErr.Kind != KindNetwork {
		t.Errorf("kind = %s, want network", gwErr.Kind)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected wrapped deadline error")
	}
}

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, KindRateLimit},
		{"credential", &llm.ErrInvalidCredential{Err: errors.New("401")}, KindInvalidCredential},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("503")}, KindNetwork},
		{"wrapped unavailable", fmt.Errorf("call: %w", &llm.ErrProviderUnavailable{}), KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"net error", timeoutNetErr{}, KindNetwork},
		{"unsupported", &llm.ErrUnsupported{Provider: "anthropic", Feature: "image"}, KindUnknown},
		{"invalid response", &llm.ErrInvalidResponse{Err: errors.New("no choices")}, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindNetwork, Op: "generate text", Err: errors.New("dial tcp")}
	if got := err.Error(); got != "gateway generate text (network): dial tcp" {
		t.Errorf("Error() = %q", got)
	}
}
