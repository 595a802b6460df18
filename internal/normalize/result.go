// Package normalize turns raw generation replies into typed results.
// Text passes through untouched, structured replies are validated against
// their declared schema, and image replies are reduced to a data URI.
package normalize

import (
	"encoding/base64"
)

// Result is one of TextResult, ItemListResult, DiagramResult, ImageResult
// or ErrorResult.
type Result interface {
	result()
}

// TextResult is a free-text reply.
type TextResult struct {
	Body string
}

// QuestionType is the closed set of question kinds.
type QuestionType string

const (
	QuestionMCQ        QuestionType = "MCQ"
	QuestionSubjective QuestionType = "Subjective"
	QuestionNumerical  QuestionType = "Numerical"
)

// QuestionItem is one generated practice question.
type QuestionItem struct {
	ID          string       `json:"id"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
	Type        QuestionType `json:"type"`
}

// ItemListResult is a validated question set.
type ItemListResult struct {
	Items []QuestionItem
}

// DiagramLabel names one labelled part of a diagram.
type DiagramLabel struct {
	Name     string `json:"name"`
	Function string `json:"function"`
}

// DiagramResult is the description half of a diagram package.
type DiagramResult struct {
	Description string         `json:"description"`
	Labels      []DiagramLabel `json:"labels"`
	Tips        []string       `json:"tips"`
}

// ImageResult is an inline image extracted from a multi-part reply.
type ImageResult struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image as a directly displayable data URI.
func (r ImageResult) DataURI() string {
	return "data:" + r.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

func (TextResult) result()     {}
func (ItemListResult) result() {}
func (DiagramResult) result()  {}
func (ImageResult) result()    {}
func (ErrorResult) result()    {}
