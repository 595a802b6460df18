package prompts

import (
	"fmt"
	"strings"

	"github.com/abhisek/betopper/internal/llm"
)

// DefaultLanguage is the chat reply language when none is chosen.
const DefaultLanguage = "English"

// Chat builds one conversational turn. The system instruction is
// parameterized by reply language; history is carried in order and the
// new user message is appended last.
func Chat(language string, history []llm.Message, message string) (*Request, error) {
	if err := firstErr(requireText("language", language), requireText("message", message)); err != nil {
		return nil, err
	}
	for i, m := range history {
		if m.Role != llm.RoleUser && m.Role != llm.RoleAssistant {
			return nil, &InvalidParameterError{Field: fmt.Sprintf("history[%d].role", i), Reason: fmt.Sprintf("unknown role %q", m.Role)}
		}
	}

	system := fmt.Sprintf("You are 'Be Topper AI', a friendly and highly knowledgeable study companion for Indian school students (Classes 9-12). "+
		"Explain concepts clearly, clear doubts instantly, and always respond in %s. Use analogies and simple examples. "+
		"If asked about syllabus, focus on CBSE/ICSE/State Boards curriculum.", strings.TrimSpace(language))

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	return &Request{
		Category:    CategoryChat,
		Instruction: withPolicy(system),
		Messages:    msgs,
		Modality:    ModalityText,
	}, nil
}
