package redis

import (
	"testing"

	"github.com/cs-copilot/backend/internal/analysis"
)

func TestKeyDistinguishesProfiles(t *testing.T) {
	email := "My export job failed again this morning."

	alice := &analysis.CustomerProfile{Name: "Alice", Tier: analysis.TierPremium, TenureMonths: 36}
	bob := &analysis.CustomerProfile{Name: "Bob", Tier: analysis.TierPremium, TenureMonths: 2}

	if Key(email, alice) == Key(email, bob) {
		t.Error("same email and tier but different profiles must not share a cache key")
	}
}

func TestKeyStable(t *testing.T) {
	email := "My export job failed again this morning."
	profile := &analysis.CustomerProfile{Name: "Alice", Tier: analysis.TierPremium, TenureMonths: 36}

	if Key(email, profile) != Key(email, profile) {
		t.Error("identical inputs must produce the same key")
	}
}

func TestKeyNilProfile(t *testing.T) {
	email := "My export job failed again this morning."
	profile := &analysis.CustomerProfile{Tier: analysis.TierBasic}

	if Key(email, nil) == Key(email, profile) {
		t.Error("nil profile must not collide with a populated profile")
	}
	if Key(email, nil) != Key(email, nil) {
		t.Error("nil profile keys must be stable")
	}
}

func TestKeyDistinguishesEmails(t *testing.T) {
	profile := &analysis.CustomerProfile{Name: "Alice", Tier: analysis.TierPremium}

	if Key("first email", profile) == Key("second email", profile) {
		t.Error("different emails must not share a cache key")
	}
}
