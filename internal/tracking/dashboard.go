package tracking

import "math"

// DashboardData is the aggregate metrics snapshot consumed by the
// presentation layer.
type DashboardData struct {
	PerformanceMetrics  PerformanceMetrics  `json:"performance_metrics"`
	DistributionMetrics DistributionMetrics `json:"distribution_metrics"`
	BusinessImpact      ImpactTotals        `json:"business_impact"`
	QualityMetrics      QualityAverages     `json:"quality_metrics"`
}

type PerformanceMetrics struct {
	TotalConversations   int     `json:"total_conversations"`
	AvgProcessingTimeSec float64 `json:"avg_processing_time_seconds"`
	AvgQualityScore      float64 `json:"avg_quality_score"`
	EscalationRate       float64 `json:"escalation_rate"`
}

type DistributionMetrics struct {
	Sentiment map[string]float64 `json:"sentiment_distribution"`
	Urgency   map[string]float64 `json:"urgency_distribution"`
}

type ImpactTotals struct {
	TotalTimeSavedMinutes       float64 `json:"total_time_saved_minutes"`
	TotalCostSavingsDollars     float64 `json:"total_cost_savings_dollars"`
	AvgTimeSavedPerConversation float64 `json:"avg_time_saved_per_conversation"`
	// EstimatedAnnualSavings extrapolates the average cost saving per
	// conversation to one conversation per day for a year
	// (total savings * 365 / conversation count), rounded to whole
	// dollars.
	EstimatedAnnualSavings float64 `json:"estimated_annual_savings"`
}

type QualityAverages struct {
	AvgIssueCoverage       float64 `json:"avg_issue_coverage"`
	AvgToneAppropriateness float64 `json:"avg_tone_appropriateness"`
	AvgEmpathyScore        float64 `json:"avg_empathy_score"`
}

// Dashboard aggregates the recorded traces. With no history yet it
// returns fixed demo figures; callers must not assume a non-empty
// history backs the snapshot.
func (t *Tracker) Dashboard() DashboardData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.traces) == 0 {
		return demoDashboardData()
	}

	n := float64(len(t.traces))

	sentimentCounts := map[string]float64{"Positive": 0, "Neutral": 0, "Frustrated": 0, "Angry": 0}
	urgencyCounts := map[string]float64{"Low": 0, "Medium": 0, "High": 0, "Critical": 0}

	var (
		totalTimeSaved   float64
		totalCostSavings float64
		totalCoverage    float64
		totalTone        float64
		totalEmpathy     float64
	)

	for _, trace := range t.traces {
		sentimentCounts[string(trace.Analysis.Sentiment.Label)]++
		urgencyCounts[string(trace.Analysis.Urgency.Level)]++
		totalTimeSaved += trace.BusinessImpact.TimeSavedMinutes
		totalCostSavings += trace.BusinessImpact.CostSavingsDollars
		totalCoverage += trace.QualityScores.IssueCoverage
		totalTone += trace.QualityScores.ToneAppropriateness
		totalEmpathy += trace.QualityScores.Empathy
	}

	for label := range sentimentCounts {
		sentimentCounts[label] /= n
	}
	for level := range urgencyCounts {
		urgencyCounts[level] /= n
	}

	return DashboardData{
		PerformanceMetrics: PerformanceMetrics{
			TotalConversations:   t.perf.conversations,
			AvgProcessingTimeSec: round2(t.perf.totalProcessingSec / n),
			AvgQualityScore:      round2(t.perf.totalQuality / n),
			EscalationRate:       round3(float64(t.perf.escalations) / n),
		},
		DistributionMetrics: DistributionMetrics{
			Sentiment: sentimentCounts,
			Urgency:   urgencyCounts,
		},
		BusinessImpact: ImpactTotals{
			TotalTimeSavedMinutes:       round2(totalTimeSaved),
			TotalCostSavingsDollars:     round2(totalCostSavings),
			AvgTimeSavedPerConversation: round2(totalTimeSaved / n),
			EstimatedAnnualSavings:      math.Round(totalCostSavings * 365 / n),
		},
		QualityMetrics: QualityAverages{
			AvgIssueCoverage:       round2(totalCoverage / n),
			AvgToneAppropriateness: round2(totalTone / n),
			AvgEmpathyScore:        round2(totalEmpathy / n),
		},
	}
}

func demoDashboardData() DashboardData {
	return DashboardData{
		PerformanceMetrics: PerformanceMetrics{
			TotalConversations:   0,
			AvgProcessingTimeSec: 3.2,
			AvgQualityScore:      8.1,
			EscalationRate:       0.18,
		},
		DistributionMetrics: DistributionMetrics{
			Sentiment: map[string]float64{
				"Positive":   0.35,
				"Neutral":    0.40,
				"Frustrated": 0.20,
				"Angry":      0.05,
			},
			Urgency: map[string]float64{
				"Low":      0.30,
				"Medium":   0.45,
				"High":     0.20,
				"Critical": 0.05,
			},
		},
		BusinessImpact: ImpactTotals{
			TotalTimeSavedMinutes:       0,
			TotalCostSavingsDollars:     0,
			AvgTimeSavedPerConversation: 12.5,
			EstimatedAnnualSavings:      125000,
		},
		QualityMetrics: QualityAverages{
			AvgIssueCoverage:       8.2,
			AvgToneAppropriateness: 8.4,
			AvgEmpathyScore:        7.9,
		},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
