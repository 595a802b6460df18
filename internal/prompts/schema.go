package prompts

import "github.com/abhisek/betopper/internal/llm"

// QuestionItemsSchema constrains question bank and daily practice replies.
var QuestionItemsSchema = &llm.Schema{
	Name:        "question-items-v1",
	Description: "A list of practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type": "string",
				},
				"question": map[string]any{
					"type": "string",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Only for MCQ types",
				},
				"answer": map[string]any{
					"type": "string",
				},
				"explanation": map[string]any{
					"type": "string",
				},
				"type": map[string]any{
					"type": "string",
					"enum": []any{"MCQ", "Subjective", "Numerical"},
				},
			},
			"required": []any{"id", "question", "answer", "explanation", "type"},
		},
	},
}

// DiagramSchema constrains the description half of a diagram package.
var DiagramSchema = &llm.Schema{
	Name:        "diagram-package-v1",
	Description: "A science diagram breakdown with labelled parts and drawing tips",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{
				"type":        "string",
				"description": "Visual description of the diagram",
			},
			"labels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":     map[string]any{"type": "string"},
						"function": map[string]any{"type": "string"},
					},
					"required": []any{"name", "function"},
				},
			},
			"tips": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"description", "labels", "tips"},
	},
}
