package models

import "time"

// TraceRecord is the flattened row shape for a persisted conversation
// trace. Nested analysis detail is stored as JSON text.
type TraceRecord struct {
	ID                 string
	CustomerTier       string
	Sentiment          string
	Urgency            string
	Intents            []string
	EscalationNeeded   bool
	ResolutionEstimate string
	QualityOverall     float64
	ProcessingMS       int
	TimeSavedMinutes   float64
	CostSavingsDollars float64
	ResponseLength     int
	EmailExcerpt       string
	CreatedAt          time.Time
}

type Feedback struct {
	ID            int
	TraceID       string
	Helpful       bool
	IssueCategory string
	Comment       string
	CreatedAt     time.Time
}
