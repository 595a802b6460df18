package prompts

// Category identifies one content-generation use case.
type Category string

const (
	CategoryNotes             Category = "notes"
	CategoryQuestionBank      Category = "question-bank"
	CategoryDailyPractice     Category = "daily-practice"
	CategoryExpectedQuestions Category = "expected-questions"
	CategoryChat              Category = "chat"
	CategorySamplePaper       Category = "sample-paper"
	CategoryDiagram           Category = "diagram"
	CategoryActivity          Category = "activity"
	CategoryAnswerKey         Category = "answer-key"
)

// AllCategories returns every category in menu order.
func AllCategories() []Category {
	return []Category{
		CategoryNotes, CategoryQuestionBank, CategoryDailyPractice,
		CategoryExpectedQuestions, CategoryChat, CategorySamplePaper,
		CategoryDiagram, CategoryActivity, CategoryAnswerKey,
	}
}

// Structured reports whether replies in this category carry schema JSON.
func (c Category) Structured() bool {
	switch c {
	case CategoryQuestionBank, CategoryDailyPractice, CategoryDiagram:
		return true
	}
	return false
}

// Modality is the shape of output a request asks for.
type Modality string

const (
	ModalityText      Modality = "text"
	ModalityTextImage Modality = "text+image"
)

// PaperMode selects how a sample paper is sourced.
type PaperMode string

const (
	PaperModeHighYield PaperMode = "highyield"
	PaperModePredicted PaperMode = "predicted"
)

// DefaultPaperCycle is the exam cycle label used when none is given.
const DefaultPaperCycle = "2025 Predicted"

func (m PaperMode) description() (string, bool) {
	switch m {
	case PaperModeHighYield:
		return `High-Yield "Must-Know" questions curated from historical board archives and repetition patterns.`, true
	case PaperModePredicted:
		return "Predictive 2025 Board Examination simulation.", true
	}
	return "", false
}

// AnswerKeyKind names the material an answer key is produced for.
type AnswerKeyKind string

const (
	AnswerKeyPaper        AnswerKeyKind = "paper"
	AnswerKeyExpected     AnswerKeyKind = "expected"
	AnswerKeyQuestionBank AnswerKeyKind = "question-bank"
	AnswerKeyDPP          AnswerKeyKind = "dpp"
)

// Label is the human-readable material type embedded in the prompt.
// Daily practice sets share the question bank label.
func (k AnswerKeyKind) Label() (string, bool) {
	switch k {
	case AnswerKeyPaper:
		return "Full Length Paper", true
	case AnswerKeyExpected:
		return "Expected Qs", true
	case AnswerKeyQuestionBank, AnswerKeyDPP:
		return "Question Bank", true
	}
	return "", false
}
