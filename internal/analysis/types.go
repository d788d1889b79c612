package analysis

import "strings"

// SentimentLabel is a closed enum. Model output is coerced at the parse
// boundary so the rule engine never sees free text.
type SentimentLabel string

const (
	SentimentPositive   SentimentLabel = "Positive"
	SentimentNeutral    SentimentLabel = "Neutral"
	SentimentFrustrated SentimentLabel = "Frustrated"
	SentimentAngry      SentimentLabel = "Angry"
	SentimentUnknown    SentimentLabel = "Unknown"
)

func (s SentimentLabel) Negative() bool {
	return s == SentimentFrustrated || s == SentimentAngry
}

// CoerceSentiment maps raw model text onto the closed enum,
// case-insensitively. Unmatched input becomes Unknown.
func CoerceSentiment(raw string) SentimentLabel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return SentimentPositive
	case "neutral":
		return SentimentNeutral
	case "frustrated":
		return SentimentFrustrated
	case "angry":
		return SentimentAngry
	default:
		return SentimentUnknown
	}
}

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyMedium   UrgencyLevel = "Medium"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
	UrgencyUnknown  UrgencyLevel = "Unknown"
)

func (u UrgencyLevel) Elevated() bool {
	return u == UrgencyHigh || u == UrgencyCritical
}

func CoerceUrgency(raw string) UrgencyLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return UrgencyLow
	case "medium":
		return UrgencyMedium
	case "high":
		return UrgencyHigh
	case "critical":
		return UrgencyCritical
	default:
		return UrgencyUnknown
	}
}

// Intent categories the classifier is prompted with. Anything else the
// model returns is kept for display but normalized to IntentOther for
// rule purposes.
const (
	IntentBillingDispute      = "Billing Dispute"
	IntentFeatureRequest      = "Feature Request"
	IntentTechnicalIssue      = "Technical Issue"
	IntentAccountAccess       = "Account Access"
	IntentCancellationRequest = "Cancellation Request"
	IntentIntegrationSupport  = "Integration Support"
	IntentTrainingRequest     = "Training Request"
	IntentGeneralInquiry      = "General Inquiry"
	IntentComplaint           = "Complaint"
	IntentCompliment          = "Compliment"
	IntentOther               = "Other"
)

var knownIntents = map[string]string{
	"billing dispute":      IntentBillingDispute,
	"feature request":      IntentFeatureRequest,
	"technical issue":      IntentTechnicalIssue,
	"account access":       IntentAccountAccess,
	"cancellation request": IntentCancellationRequest,
	"integration support":  IntentIntegrationSupport,
	"training request":     IntentTrainingRequest,
	"general inquiry":      IntentGeneralInquiry,
	"complaint":            IntentComplaint,
	"compliment":           IntentCompliment,
}

// CoerceIntent returns the canonical intent label, or IntentOther when
// the raw label is outside the documented set.
func CoerceIntent(raw string) string {
	if canonical, ok := knownIntents[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return IntentOther
}

// CoerceIntents preserves order and duplicates; order matters for
// display and for the resolution-time scan.
func CoerceIntents(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, CoerceIntent(r))
	}
	return out
}

type CustomerTier string

const (
	TierPremium  CustomerTier = "Premium"
	TierStandard CustomerTier = "Standard"
	TierBasic    CustomerTier = "Basic"
)

// CustomerProfile is an immutable value object supplied by the caller.
type CustomerProfile struct {
	Name                string       `json:"name"`
	Tier                CustomerTier `json:"tier"`
	TenureMonths        int          `json:"tenure_months"`
	PreviousSentiment   string       `json:"previous_sentiment"`
	SupportTicketsCount int          `json:"support_tickets_count"`
	LastInteractionDate string       `json:"last_interaction_date"`
}

type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	RawLabel   string         `json:"raw_label,omitempty"`
	Confidence float64        `json:"confidence"`
	Indicators []string       `json:"key_indicators,omitempty"`
}

type Urgency struct {
	Level      UrgencyLevel `json:"level"`
	RawLevel   string       `json:"raw_level,omitempty"`
	Reasoning  string       `json:"reasoning"`
	Indicators []string     `json:"urgency_indicators,omitempty"`
}

// CustomerContext is derived from the profile, never persisted.
type CustomerContext struct {
	ProfileAvailable     bool   `json:"profile_available"`
	CustomerName         string `json:"customer_name,omitempty"`
	Tier                 string `json:"tier,omitempty"`
	Tenure               string `json:"tenure,omitempty"`
	PreviousSentiment    string `json:"previous_sentiment,omitempty"`
	SupportHistory       string `json:"support_history,omitempty"`
	RelationshipStrength string `json:"relationship_strength,omitempty"`
}

// AnalysisResult is created once per analysis call and immutable after
// construction.
type AnalysisResult struct {
	Sentiment               Sentiment       `json:"sentiment"`
	Urgency                 Urgency         `json:"urgency"`
	Intent                  []string        `json:"intent"`
	KeyIssues               []string        `json:"key_issues"`
	CustomerContext         CustomerContext `json:"customer_context"`
	EscalationNeeded        bool            `json:"escalation_needed"`
	EstimatedResolutionTime string          `json:"estimated_resolution_time"`

	// Fallbacks lists stages that degraded to their fixed fallback
	// value, with diagnostics, so callers can render a low-confidence
	// marker instead of an error page.
	Fallbacks []StageFallback `json:"fallbacks,omitempty"`
}

type StageFallback struct {
	Stage      string `json:"stage"`
	Diagnostic string `json:"diagnostic"`
}

// ResponseSuggestion pairs the generated reply with the deterministic
// post-processors' output.
type ResponseSuggestion struct {
	SuggestedResponse string `json:"suggested_response"`
	ToneGuidance      string `json:"tone_guidance"`
	FollowUpActions   string `json:"follow_up_actions"`
	Fallback          bool   `json:"fallback,omitempty"`
}
