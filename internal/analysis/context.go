package analysis

import "fmt"

// BuildCustomerContext derives the context mapping used for response
// personalization. A nil profile yields the profile_available=false
// marker only.
func BuildCustomerContext(profile *CustomerProfile) CustomerContext {
	if profile == nil {
		return CustomerContext{ProfileAvailable: false}
	}

	return CustomerContext{
		ProfileAvailable:     true,
		CustomerName:         profile.Name,
		Tier:                 string(profile.Tier),
		Tenure:               fmt.Sprintf("%d months", profile.TenureMonths),
		PreviousSentiment:    profile.PreviousSentiment,
		SupportHistory:       fmt.Sprintf("%d previous tickets", profile.SupportTicketsCount),
		RelationshipStrength: RelationshipStrength(profile),
	}
}

// RelationshipStrength scores tenure, tier, prior sentiment and ticket
// history into a Strong/Moderate/Weak label.
func RelationshipStrength(profile *CustomerProfile) string {
	score := 0

	if profile.TenureMonths > 24 {
		score += 2
	} else if profile.TenureMonths > 12 {
		score += 1
	}

	switch profile.Tier {
	case TierPremium:
		score += 2
	case TierStandard:
		score += 1
	}

	switch profile.PreviousSentiment {
	case "Positive":
		score += 2
	case "Neutral":
		score += 1
	}

	if profile.SupportTicketsCount < 3 {
		score += 1
	}

	switch {
	case score >= 6:
		return "Strong"
	case score >= 4:
		return "Moderate"
	default:
		return "Weak"
	}
}
