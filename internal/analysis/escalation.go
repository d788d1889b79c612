package analysis

import "strings"

// escalationTriggers are matched case-insensitively as substrings
// anywhere in the email body.
var escalationTriggers = []string{
	"cancel", "cancellation", "terminate", "refund",
	"lawyer", "legal", "unacceptable", "terrible",
	"manager", "supervisor", "escalate",
}

const resolutionTimeEscalated = "< 2 hours (escalated)"

var resolutionTimeTable = map[string]string{
	IntentGeneralInquiry:      "< 2 hours",
	IntentBillingDispute:      "24-48 hours",
	IntentTechnicalIssue:      "4-24 hours",
	IntentFeatureRequest:      "Logged for future development",
	IntentAccountAccess:       "< 4 hours",
	IntentIntegrationSupport:  "1-3 business days",
	IntentCancellationRequest: "< 24 hours",
}

// AssessEscalation is a pure function of the email text, the coerced
// sentiment and urgency labels, and the profile tier. Unknown labels
// count as neither negative nor elevated.
func AssessEscalation(email string, sentiment SentimentLabel, urgency UrgencyLevel, profile *CustomerProfile) bool {
	lower := strings.ToLower(email)
	for _, trigger := range escalationTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}

	if urgency.Elevated() && sentiment.Negative() {
		return true
	}

	premium := profile != nil && profile.Tier == TierPremium
	return premium && sentiment.Negative()
}

// EstimateResolutionTime scans detected intents in order against the
// fixed table. The worst-case winner is picked by a substring check on
// "business days" / "24-48", not by a real duration ordering, so a
// later billing dispute overrides an earlier integration estimate.
func EstimateResolutionTime(intents []string, escalationNeeded bool) string {
	if escalationNeeded {
		return resolutionTimeEscalated
	}

	maxTime := "< 2 hours"
	for _, intent := range intents {
		estimate, ok := resolutionTimeTable[intent]
		if !ok {
			continue
		}
		if strings.Contains(estimate, "business days") || strings.Contains(estimate, "24-48") {
			maxTime = estimate
		}
	}

	return maxTime
}
