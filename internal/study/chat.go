package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/betopper/internal/gateway"
	"github.com/abhisek/betopper/internal/ledger"
)

// ChatGreeting opens every conversation. It is shown, not sent.
const ChatGreeting = "Hi! I'm your Be Topper AI Friend. Ask me any concept or doubt, and I'll explain it simply. What should we study today?"

// ChatFallback replaces an empty reply.
const ChatFallback = "Sorry, I missed that."

// Chat is one conversation with the study companion.
type Chat struct {
	svc     *Service
	session *gateway.Session
}

// NewChat starts a conversation in the given reply language.
func (s *Service) NewChat(language string) *Chat {
	session := gateway.NewSession(language)
	session.Fallback = ChatFallback
	return &Chat{svc: s, session: session}
}

// Language returns the reply language.
func (c *Chat) Language() string { return c.session.Language }

// Exchanges returns the number of completed exchanges.
func (c *Chat) Exchanges() int { return c.session.Exchanges() }

// Send sends one message. Every second completed exchange earns the chat
// award. A failed turn leaves the history untouched.
func (c *Chat) Send(ctx context.Context, message string) (string, error) {
	reply, err := c.svc.gen.ConverseTurn(ctx, c.session, message)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	if a, ok := ledger.ChatAward(c.session.Exchanges()); ok {
		c.svc.award(ctx, a)
	}
	if strings.TrimSpace(reply) == "" {
		return ChatFallback, nil
	}
	return reply, nil
}
