package sqlite

import (
	"github.com/cs-copilot/backend/internal/storage/models"
	"github.com/cs-copilot/backend/internal/tracking"
)

// TraceSink adapts the sqlite client to the tracker's persistence
// contract, flattening the nested trace into a row.
type TraceSink struct {
	client *Client
}

func NewTraceSink(client *Client) *TraceSink {
	return &TraceSink{client: client}
}

func (s *TraceSink) InsertTrace(trace *tracking.ConversationTrace) error {
	tier := ""
	if trace.CustomerProfile != nil {
		tier = string(trace.CustomerProfile.Tier)
	}

	return s.client.InsertTraceRecord(&models.TraceRecord{
		ID:                 trace.ConversationID,
		CustomerTier:       tier,
		Sentiment:          string(trace.Analysis.Sentiment.Label),
		Urgency:            string(trace.Analysis.Urgency.Level),
		Intents:            trace.Analysis.Intent,
		EscalationNeeded:   trace.Analysis.EscalationNeeded,
		ResolutionEstimate: trace.Analysis.EstimatedResolutionTime,
		QualityOverall:     trace.QualityScores.Overall,
		ProcessingMS:       int(trace.Timing.TotalProcessingSec * 1000),
		TimeSavedMinutes:   trace.BusinessImpact.TimeSavedMinutes,
		CostSavingsDollars: trace.BusinessImpact.CostSavingsDollars,
		ResponseLength:     trace.ResponseLength,
		EmailExcerpt:       trace.EmailExcerpt,
		CreatedAt:          trace.Timestamp,
	})
}
