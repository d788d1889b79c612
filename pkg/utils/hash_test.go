package utils

import "testing"

func TestHashString(t *testing.T) {
	if got := HashString("hello"); got != "2cf24dba5fb0a30e26e83b2ac5b9e29e" {
		t.Errorf("HashString(hello) = %q", got)
	}

	if len(HashString("")) != 32 {
		t.Error("HashString should always return 32 hex characters")
	}

	if HashString("a") == HashString("b") {
		t.Error("distinct inputs should not collide")
	}
}
