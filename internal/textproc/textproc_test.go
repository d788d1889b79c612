package textproc

import (
	"strings"
	"testing"
)

func TestCleanEmailPlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t  ", ""},
		{"collapses runs of spaces and tabs", "Hello\t\t  world", "Hello world"},
		{"trims each line", "  first line  \n   second line ", "first line\nsecond line"},
		{"angle brackets without html tags pass through", "a < b and b > a", "a < b and b > a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanEmail(tt.raw); got != tt.want {
				t.Errorf("CleanEmail(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanEmailStripsHTML(t *testing.T) {
	raw := `<html><head><title>x</title></head><body><p>Hi team,</p><script>alert(1)</script><p>the sync   is broken.</p></body></html>`
	got := CleanEmail(raw)

	if strings.Contains(got, "<p>") || strings.Contains(got, "alert") || strings.Contains(got, "title") {
		t.Errorf("CleanEmail() left markup or script content: %q", got)
	}
	if !strings.Contains(got, "Hi team,") || !strings.Contains(got, "the sync is broken.") {
		t.Errorf("CleanEmail() lost body text: %q", got)
	}
}

func TestStats(t *testing.T) {
	stats := Stats("The dashboard is down. We need help now.")

	if stats.Words == 0 {
		t.Fatal("Stats() counted no words")
	}
	if stats.Sentences != 2 {
		t.Errorf("Sentences = %d, want 2", stats.Sentences)
	}
	if want := float64(stats.Words) * 1.3; stats.TokenEstimate != want {
		t.Errorf("TokenEstimate = %v, want %v", stats.TokenEstimate, want)
	}
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats("   ")
	if stats.Words != 0 || stats.Sentences != 0 || stats.TokenEstimate != 0 {
		t.Errorf("Stats(blank) = %+v, want zero value", stats)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"this is a longer excerpt", 7, "this is..."},
		{"héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.text, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
