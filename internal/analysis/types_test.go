package analysis

import (
	"reflect"
	"testing"
)

func TestCoerceSentiment(t *testing.T) {
	tests := []struct {
		raw  string
		want SentimentLabel
	}{
		{"Positive", SentimentPositive},
		{"positive", SentimentPositive},
		{"  FRUSTRATED  ", SentimentFrustrated},
		{"angry", SentimentAngry},
		{"Neutral", SentimentNeutral},
		{"somewhat annoyed", SentimentUnknown},
		{"", SentimentUnknown},
	}

	for _, tt := range tests {
		if got := CoerceSentiment(tt.raw); got != tt.want {
			t.Errorf("CoerceSentiment(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSentimentNegative(t *testing.T) {
	if !SentimentFrustrated.Negative() || !SentimentAngry.Negative() {
		t.Error("Frustrated and Angry should be negative")
	}
	if SentimentPositive.Negative() || SentimentNeutral.Negative() || SentimentUnknown.Negative() {
		t.Error("Positive, Neutral and Unknown should not be negative")
	}
}

func TestCoerceUrgency(t *testing.T) {
	tests := []struct {
		raw  string
		want UrgencyLevel
	}{
		{"low", UrgencyLow},
		{"Medium", UrgencyMedium},
		{"HIGH", UrgencyHigh},
		{" critical ", UrgencyCritical},
		{"extreme", UrgencyUnknown},
		{"", UrgencyUnknown},
	}

	for _, tt := range tests {
		if got := CoerceUrgency(tt.raw); got != tt.want {
			t.Errorf("CoerceUrgency(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestUrgencyElevated(t *testing.T) {
	if !UrgencyHigh.Elevated() || !UrgencyCritical.Elevated() {
		t.Error("High and Critical should be elevated")
	}
	if UrgencyLow.Elevated() || UrgencyMedium.Elevated() || UrgencyUnknown.Elevated() {
		t.Error("Low, Medium and Unknown should not be elevated")
	}
}

func TestCoerceIntents(t *testing.T) {
	raw := []string{"billing dispute", "Technical Issue", "something novel", "Billing Dispute"}
	want := []string{IntentBillingDispute, IntentTechnicalIssue, IntentOther, IntentBillingDispute}

	got := CoerceIntents(raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoerceIntents(%v) = %v, want %v", raw, got, want)
	}
}
