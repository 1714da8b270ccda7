package pkg

import (
	"time"
)

// Shared types for blog/article analysis

// Sentiment is the overall tone detected in an article
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known sentiment labels
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// ----------------------------------------------------
// ================ Extraction ================

// ExtractionResult is the outcome of structured extraction.
// It is either ValidExtraction or InvalidExtraction.
type ExtractionResult interface {
	isExtractionResult()
}

// ValidExtraction carries the details the model could confidently extract
type ValidExtraction struct {
	Title     string    `json:"title"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
}

// InvalidExtraction signals that the model could not extract topics or sentiment
type InvalidExtraction struct {
	Reason string `json:"reason,omitempty"`
}

func (ValidExtraction) isExtractionResult()   {}
func (InvalidExtraction) isExtractionResult() {}

// ----------------------------------------------------
// ================ Request ================

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	SessionID *string `json:"session_id,omitempty"`
	UserInput *string `json:"user_input,omitempty"`
}

// ----------------------------------------------------
// ================ Response ================

// Session statuses reported to clients
const (
	StatusAwaitingUserInput = "awaiting_user_input"
	StatusDone              = "done"
)

// Search statuses reported to clients
const (
	SearchStatusSuccess  = "success"
	SearchStatusNotFound = "not_found"
	SearchStatusError    = "error"
)

// AIMessage is the ai_message payload of an analyze response.
// It is either *AnalysisResult or *PendingReply.
type AIMessage interface {
	isAIMessage()
}

// AnalysisResult is the final structured analysis returned to clients.
// A missing title is encoded as null.
type AnalysisResult struct {
	Title     *string   `json:"title"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
	Summary   string    `json:"summary"`
	Keywords  []string  `json:"keywords"`
}

// PendingReply echoes the question a resumed session is waiting on
type PendingReply struct {
	Response string `json:"response"`
}

func (*AnalysisResult) isAIMessage() {}
func (*PendingReply) isAIMessage()   {}

// AnalyzeResponse is the response of POST /analyze
type AnalyzeResponse struct {
	SessionID    string    `json:"session_id"`
	Status       string    `json:"status"`
	AwaitingNode *string   `json:"awaiting_node"`
	Message      string    `json:"message,omitempty"`
	AIMessage    AIMessage `json:"ai_message,omitempty"`
}

// AnalysisRecord is a persisted analysis row
type AnalysisRecord struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title,omitempty"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
	Summary   string    `json:"summary"`
	Keywords  []string  `json:"keywords"`
}

// SearchResponse is the response of GET /search
type SearchResponse struct {
	Status  string           `json:"status"`
	Count   *int             `json:"count,omitempty"`
	Results []AnalysisRecord `json:"results,omitempty"`
	Message string           `json:"message,omitempty"`
}

// SessionView is the response of GET /sessions/:id
type SessionView struct {
	SessionID      string        `json:"session_id"`
	Step           string        `json:"step"`
	PendingMessage string        `json:"pending_message,omitempty"`
	Fields         SessionFields `json:"fields"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// SessionFields mirrors the fields accumulated by a session
type SessionFields struct {
	UserInput string    `json:"user_input,omitempty"`
	Title     string    `json:"title,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
}
