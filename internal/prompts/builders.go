package prompts

import (
	"fmt"
	"strings"

	"github.com/abhisek/betopper/internal/curriculum"
)

// Notes builds a request for concise revision notes on a topic.
func Notes(p Params) (*Request, error) {
	if err := firstErr(
		requireClass(p.Class),
		requireText("subject", p.Subject),
		requireText("topic", p.Topic),
	); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert Indian educator. Create highly concise, bullet-pointed revision notes for a Class %d student on the topic %q in the subject %q.\n", p.Class, p.Topic, p.Subject)
	b.WriteString("The notes MUST be:\n")
	b.WriteString("1. Organized with clear, bold headings.\n")
	b.WriteString("2. Contain only the most essential formulas, definitions, and facts.\n")
	b.WriteString("3. Use a friendly but professional tone.\n")
	b.WriteString("4. Structured for quick reading (maximum 300 words).\n")
	b.WriteString(`5. Include 2-3 "Pro-Tips" for the exam at the end.`)

	return textRequest(CategoryNotes, b.String()), nil
}

// QuestionBank builds a structured request for a mixed practice set.
func QuestionBank(p Params) (*Request, error) {
	count, err := validatePractice(p, DefaultQuestionBankCount)
	if err != nil {
		return nil, err
	}

	task := fmt.Sprintf("Generate %d diverse and high-quality practice questions for Class %d, Subject: %s, Topic: %s at a %s difficulty level.\n"+
		"Mix MCQ, short subjective, and numerical types.\n"+
		"Give options only for MCQ questions.",
		count, p.Class, p.Subject, p.Topic, p.Difficulty)

	return structuredRequest(CategoryQuestionBank, task), nil
}

// DailyPractice builds a structured request for a short daily practice set.
func DailyPractice(p Params) (*Request, error) {
	count, err := validatePractice(p, DefaultDailyPracticeCount)
	if err != nil {
		return nil, err
	}

	task := fmt.Sprintf("Generate %d high-quality Daily Practice Problems (DPP) for Class %d, Subject: %s, Topic: %s at a %s difficulty level.\n"+
		"Mix MCQ, short subjective, and numerical types.\n"+
		"Give options only for MCQ questions.",
		count, p.Class, p.Subject, p.Topic, p.Difficulty)

	return structuredRequest(CategoryDailyPractice, task), nil
}

// ExpectedQuestions builds a request for a short list of likely exam questions.
func ExpectedQuestions(p Params) (*Request, error) {
	if err := firstErr(
		requireClass(p.Class),
		requireText("subject", p.Subject),
		requireText("topic", p.Topic),
	); err != nil {
		return nil, err
	}
	count, err := resolveCount(p.Count, DefaultExpectedCount)
	if err != nil {
		return nil, err
	}

	task := fmt.Sprintf("List %d highly expected exam questions (important questions) for Class %d %s - Topic: %s.\n"+
		"STRICT REQUIREMENT: Keep each question text short (1-2 lines).",
		count, p.Class, p.Subject, p.Topic)

	return textRequest(CategoryExpectedQuestions, task), nil
}

// SamplePaper builds a request for a full-length board paper. The section
// template is fixed: A 20x1, B 5x2, C 6x3, D 4x5 marks.
func SamplePaper(p Params, mode PaperMode, cycle string) (*Request, error) {
	if err := firstErr(
		requireText("board", p.Board),
		requireClass(p.Class),
		requireText("subject", p.Subject),
	); err != nil {
		return nil, err
	}
	modeDesc, ok := mode.description()
	if !ok {
		return nil, &InvalidParameterError{Field: "mode", Reason: fmt.Sprintf("unknown paper mode %q", mode)}
	}
	if strings.TrimSpace(cycle) == "" {
		cycle = DefaultPaperCycle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a COMPLETE, FULL-LENGTH original question paper for %s Board, Class %d, Subject: %s.\n", p.Board, p.Class, p.Subject)
	fmt.Fprintf(&b, "CONTEXT: %s cycle. Mode: %s\n\n", cycle, modeDesc)
	b.WriteString("STRICT REQUIREMENTS:\n")
	b.WriteString("1. Do NOT just provide an outline. Generate EVERY single question.\n")
	for i, s := range PaperSections {
		fmt.Fprintf(&b, "%d. SECTION %s: %d %s (%d %s each).\n", i+2, s.Letter, s.Questions, s.Kind, s.Marks, plural(s.Marks, "mark"))
	}
	fmt.Fprintf(&b, "%d. Use official board exam formatting style.", len(PaperSections)+2)

	return textRequest(CategorySamplePaper, b.String()), nil
}

// PaperSection is one block of the fixed sample paper template.
type PaperSection struct {
	Letter    string
	Questions int
	Marks     int
	Kind      string
}

// PaperSections is the sample paper template, in order.
var PaperSections = []PaperSection{
	{Letter: "A", Questions: 20, Marks: 1, Kind: "Multiple Choice Questions"},
	{Letter: "B", Questions: 5, Marks: 2, Kind: "Very Short Answer Questions"},
	{Letter: "C", Questions: 6, Marks: 3, Kind: "Short Answer Questions"},
	{Letter: "D", Questions: 4, Marks: 5, Kind: "Long Answer Questions"},
}

// PaperTotalMarks sums the template's marks.
func PaperTotalMarks() int {
	total := 0
	for _, s := range PaperSections {
		total += s.Questions * s.Marks
	}
	return total
}

// Diagram builds the paired description and image request for a science
// diagram. The description is structured; the image prompt asks for a
// square textbook schematic.
func Diagram(class curriculum.ClassLevel, topic string) (*Request, error) {
	if err := firstErr(requireClass(class), requireText("topic", topic)); err != nil {
		return nil, err
	}

	task := fmt.Sprintf("Provide a structured breakdown for the science diagram of %q (Class %d Level).\n"+
		"Include visual description, labels, and drawing tips.\n"+
		"Every label needs the part name and its function.",
		topic, class)

	imagePrompt := fmt.Sprintf("Create a clean, professional scientific schematic diagram of %q for a Class %d textbook. Academic, clear, white background. Easy to understand.", topic, class)

	return &Request{
		Category:    CategoryDiagram,
		Instruction: withPolicy(task),
		Schema:      DiagramSchema,
		Modality:    ModalityTextImage,
		Image: &ImageSpec{
			Prompt:      withPolicy(imagePrompt),
			AspectRatio: DiagramAspectRatio,
		},
	}, nil
}

// Activity builds a request for a lab activity write-up.
func Activity(class curriculum.ClassLevel, topic string) (*Request, error) {
	if err := firstErr(requireClass(class), requireText("topic", topic)); err != nil {
		return nil, err
	}

	task := fmt.Sprintf("Explain the Science activity/experiment related to %q for Class %d.\n"+
		"Format: Aim, Materials, Procedure, Observation, Conclusion, VIVA VOCE.",
		topic, class)

	return textRequest(CategoryActivity, task), nil
}

// AnswerKey builds a request for a marking scheme over previously
// generated material.
func AnswerKey(kind AnswerKeyKind, p Params) (*Request, error) {
	label, ok := kind.Label()
	if !ok {
		return nil, &InvalidParameterError{Field: "kind", Reason: fmt.Sprintf("unknown answer key kind %q", kind)}
	}
	if err := firstErr(
		requireClass(p.Class),
		requireText("subject", p.Subject),
		requireText("topic", p.Topic),
		requireText("board", p.Board),
	); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Generate a COMPLETE marking scheme (Answer Key) for:\n")
	fmt.Fprintf(&b, "Type: %s\n", label)
	fmt.Fprintf(&b, "Class: %d | Subject: %s | Topic: %s | Board: %s\n\n", p.Class, p.Subject, p.Topic, p.Board)
	b.WriteString("Provide point-wise model answers and marking tips.")

	return textRequest(CategoryAnswerKey, b.String()), nil
}

func validatePractice(p Params, def int) (int, error) {
	if err := firstErr(
		requireClass(p.Class),
		requireText("subject", p.Subject),
		requireText("topic", p.Topic),
		requireDifficulty(p.Difficulty),
	); err != nil {
		return 0, err
	}
	return resolveCount(p.Count, def)
}

func textRequest(c Category, task string) *Request {
	return &Request{
		Category:    c,
		Instruction: withPolicy(task),
		Modality:    ModalityText,
	}
}

func structuredRequest(c Category, task string) *Request {
	return &Request{
		Category:    c,
		Instruction: withPolicy(task),
		Schema:      QuestionItemsSchema,
		Modality:    ModalityText,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
