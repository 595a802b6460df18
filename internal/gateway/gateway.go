// Package gateway is the single owner of the generative service
// configuration. It turns built prompts into provider calls and reports
// failures as classified *Error values. Calls are never cached.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/logger"
	"github.com/abhisek/betopper/internal/prompts"
)

// Options configures a Gateway.
type Options struct {
	// Routes picks a model per output modality. Empty entries use the
	// provider's configured model.
	Routes llm.ModelRoutes

	// Timeout bounds each call. Zero means no gateway-imposed deadline.
	Timeout time.Duration

	Logger *logger.Logger
}

// Gateway dispatches prompt requests to a provider.
type Gateway struct {
	provider llm.Provider
	routes   llm.ModelRoutes
	timeout  time.Duration
	log      *logger.Logger
}

// New wraps an already decorated provider.
func New(p llm.Provider, opts Options) *Gateway {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{
		provider: p,
		routes:   opts.Routes,
		timeout:  opts.Timeout,
		log:      log,
	}
}

// ModelID returns the provider's default model.
func (g *Gateway) ModelID() string {
	return g.provider.ModelID()
}

// GenerateText sends a single-turn free-text request and returns the raw
// reply text, which may be empty.
func (g *Gateway) GenerateText(ctx context.Context, req *prompts.Request) (string, error) {
	resp, err := g.call(ctx, "generate text", string(req.Category), llm.Request{
		Messages: userTurn(req.Instruction),
		Model:    g.routes.Text,
	})
	if err != nil {
		return "", err
	}
	return string(resp.Content), nil
}

// GenerateStructured sends a schema-constrained request and returns the
// reply JSON unvalidated.
func (g *Gateway) GenerateStructured(ctx context.Context, req *prompts.Request) (json.RawMessage, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("generate structured: %s request has no schema", req.Category)
	}
	resp, err := g.call(ctx, "generate structured", string(req.Category), llm.Request{
		Messages: userTurn(req.Instruction),
		Schema:   req.Schema,
		Model:    g.structuredModel(req.Category),
	})
	if err != nil {
		return nil, err
	}
	return resp.Content, nil
}

func (g *Gateway) structuredModel(c prompts.Category) string {
	if c == prompts.CategoryDiagram && g.routes.Diagram != "" {
		return g.routes.Diagram
	}
	return g.routes.Structured
}

// GenerateImage sends the image half of a text+image request and returns
// the multi-part reply.
func (g *Gateway) GenerateImage(ctx context.Context, req *prompts.Request) ([]llm.Part, error) {
	if req.Image == nil {
		return nil, fmt.Errorf("generate image: %s request has no image spec", req.Category)
	}
	resp, err := g.call(ctx, "generate image", string(req.Category)+"-image", llm.Request{
		Messages: userTurn(req.Image.Prompt),
		Image:    &llm.ImageConfig{AspectRatio: req.Image.AspectRatio},
		Model:    g.routes.Image,
	})
	if err != nil {
		return nil, err
	}
	return resp.Parts, nil
}

// ConverseTurn sends one chat message with the session's full history.
// On success the message and reply are appended to the session, with a
// blank reply replaced by the session's Fallback; on failure the session
// is left as it was.
func (g *Gateway) ConverseTurn(ctx context.Context, s *Session, message string) (string, error) {
	req, err := prompts.Chat(s.Language, s.History, message)
	if err != nil {
		return "", err
	}
	resp, err := g.call(ctx, "converse", string(req.Category), llm.Request{
		System:   req.Instruction,
		Messages: req.Messages,
		Model:    g.routes.Text,
	})
	if err != nil {
		return "", err
	}
	reply := string(resp.Content)
	if strings.TrimSpace(reply) == "" && s.Fallback != "" {
		reply = s.Fallback
	}
	s.History = append(s.History,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	return reply, nil
}

func (g *Gateway) call(ctx context.Context, op, purpose string, req llm.Request) (*llm.Response, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		gwErr := wrap(op, err)
		g.log.Debug("generation failed", "op", op, "purpose", purpose, "kind", kindOf(gwErr))
		return nil, gwErr
	}
	return resp, nil
}

func kindOf(err error) ErrorKind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindUnknown
}

func userTurn(text string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: text}}
}
