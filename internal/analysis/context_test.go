package analysis

import "testing"

func TestBuildCustomerContextNilProfile(t *testing.T) {
	ctx := BuildCustomerContext(nil)
	if ctx.ProfileAvailable {
		t.Error("nil profile should yield profile_available=false")
	}
	if ctx.CustomerName != "" || ctx.RelationshipStrength != "" {
		t.Error("nil profile should yield no derived fields")
	}
}

func TestBuildCustomerContext(t *testing.T) {
	ctx := BuildCustomerContext(&CustomerProfile{
		Name:                "Dana Osei",
		Tier:                TierPremium,
		TenureMonths:        36,
		PreviousSentiment:   "Positive",
		SupportTicketsCount: 2,
	})

	if !ctx.ProfileAvailable {
		t.Fatal("expected profile_available=true")
	}
	if ctx.Tier != string(TierPremium) {
		t.Errorf("Tier = %q, want %q", ctx.Tier, TierPremium)
	}
	if ctx.Tenure != "36 months" {
		t.Errorf("Tenure = %q, want %q", ctx.Tenure, "36 months")
	}
	if ctx.SupportHistory != "2 previous tickets" {
		t.Errorf("SupportHistory = %q, want %q", ctx.SupportHistory, "2 previous tickets")
	}
	if ctx.RelationshipStrength != "Strong" {
		t.Errorf("RelationshipStrength = %q, want %q", ctx.RelationshipStrength, "Strong")
	}
}

func TestRelationshipStrength(t *testing.T) {
	tests := []struct {
		name    string
		profile CustomerProfile
		want    string
	}{
		{
			name: "long tenure premium positive",
			profile: CustomerProfile{
				Tier:                TierPremium,
				TenureMonths:        36,
				PreviousSentiment:   "Positive",
				SupportTicketsCount: 2,
			},
			want: "Strong",
		},
		{
			name: "mid tenure standard neutral",
			profile: CustomerProfile{
				Tier:                TierStandard,
				TenureMonths:        18,
				PreviousSentiment:   "Neutral",
				SupportTicketsCount: 1,
			},
			want: "Moderate",
		},
		{
			name: "new basic customer with history",
			profile: CustomerProfile{
				Tier:                TierBasic,
				TenureMonths:        3,
				PreviousSentiment:   "Negative",
				SupportTicketsCount: 8,
			},
			want: "Weak",
		},
		{
			name: "boundary tenure of exactly 24 months scores one",
			profile: CustomerProfile{
				Tier:                TierPremium,
				TenureMonths:        24,
				PreviousSentiment:   "Neutral",
				SupportTicketsCount: 5,
			},
			want: "Moderate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelationshipStrength(&tt.profile); got != tt.want {
				t.Errorf("RelationshipStrength() = %q, want %q", got, tt.want)
			}
		})
	}
}
