package model

import (
	"time"

	"github.com/google/uuid"
)

type ExchangeID string

// NewExchangeID generates a new unique ExchangeID
func NewExchangeID() ExchangeID {
	return ExchangeID(uuid.New().String())
}

// Stage is the pipeline state of an exchange. An exchange holds exactly one
// stage at a time and never leaves a terminal stage.
type Stage string

const (
	StageClassifying Stage = "classifying"
	StageOptimizing  Stage = "optimizing"
	StageTranslating Stage = "translating"
	StageExplaining  Stage = "explaining"
	StageActing      Stage = "acting"
	StageDone        Stage = "done"
	StageError       Stage = "error"
)

// Terminal reports whether the stage accepts no further transitions.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageError
}

// QueryResult is the translator's answer for one question. The two response
// shapes share SQL text; they are discriminated solely by Error being
// non-empty.
type QueryResult struct {
	Question string           `json:"question"`
	SQL      string           `json:"sql"`
	Results  []map[string]any `json:"results,omitempty"`
	RowCount int              `json:"row_count,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// IsError reports whether the query failed at the SQL level. This is a normal
// terminal outcome, distinct from a transport failure.
func (r *QueryResult) IsError() bool {
	return r != nil && r.Error != ""
}

// Exchange is one user turn through the pipeline. It is mutated in place as
// stages advance and becomes immutable once Stage is terminal.
type Exchange struct {
	ID        ExchangeID
	Question  string
	Optimized string
	Stage     Stage
	Result    *QueryResult
	Response  string
	Err       string
	CreatedAt time.Time
}

// NewExchange creates an exchange for a freshly submitted question.
func NewExchange(question string) Exchange {
	return Exchange{
		ID:        NewExchangeID(),
		Question:  question,
		Stage:     StageClassifying,
		CreatedAt: time.Now(),
	}
}
