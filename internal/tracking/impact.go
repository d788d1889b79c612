package tracking

import "math"

const (
	// manualAnalysisMinutes is the baseline time a human analyst spends
	// per communication.
	manualAnalysisMinutes = 15.0
	// baselineQuality is the average human response quality on the
	// 0-10 scale.
	baselineQuality = 6.5
	// agentCostPerMinute derives from a $50/hour support agent.
	agentCostPerMinute = 0.83
)

// BusinessImpact quantifies one conversation's value against the
// manual baseline.
type BusinessImpact struct {
	TimeSavedMinutes        float64 `json:"time_saved_minutes"`
	CostSavingsDollars      float64 `json:"cost_savings_dollars"`
	QualityImprovement      float64 `json:"quality_improvement_points"`
	SatisfactionImprovement float64 `json:"estimated_satisfaction_improvement"`
	ProcessingEfficiency    float64 `json:"processing_efficiency"`
	BusinessValueScore      float64 `json:"business_value_score"`
}

// CalculateBusinessImpact is pure arithmetic over the processing time
// (seconds), the overall quality score (0-10), and the escalation
// context. A pipeline slower than the manual baseline legitimately
// produces negative savings; values are reported, not clamped.
func CalculateBusinessImpact(processingTimeSec, qualityScore float64, escalationNeeded, urgencyElevated bool) BusinessImpact {
	analysisMinutes := processingTimeSec / 60.0
	timeSaved := manualAnalysisMinutes - analysisMinutes

	qualityImprovement := math.Max(0, qualityScore-baselineQuality)

	satisfactionMultiplier := 1.0
	if escalationNeeded && urgencyElevated {
		satisfactionMultiplier = 1.3
	}

	return BusinessImpact{
		TimeSavedMinutes:        round2(timeSaved),
		CostSavingsDollars:      round2(timeSaved * agentCostPerMinute),
		QualityImprovement:      round2(qualityImprovement),
		SatisfactionImprovement: round2(qualityImprovement * 0.1 * satisfactionMultiplier),
		ProcessingEfficiency:    round1(manualAnalysisMinutes / math.Max(analysisMinutes, 0.1)),
		BusinessValueScore:      round2(timeSaved * qualityImprovement),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
