package intent

import (
	"math"
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Lexicons for the per-mention pre-scale heuristic. The pre-scale is a
// cheap 0-10 estimate of buying intent used both by the merge-time
// qualification gate and by the forum tiers of the weight table.
var (
	strongIntents = []string{"looking for", "need urgently", "hiring immediately", "buying", "selling", "budget approved", "ready to purchase"}
	mediumIntents = []string{"need", "want", "searching", "recommendations", "advice", "suggestions"}
	urgencyWords  = []string{"urgent", "asap", "immediately", "now", "soon", "today"}
	targetPlaces  = []string{"canada", "toronto", "vancouver", "montreal", "ontario", "bc", "quebec"}

	budgetPattern = regexp.MustCompile(`(?i)\$[\d,]+k?|\d+k budget|budget.*\d+|revenue.*\$|spending.*\$`)
)

// Prescale estimates per-mention intent on a 0-10 scale from the mention
// text and its engagement counters. Deterministic, rounded to the nearest
// integer; not clamped above 10 since callers only compare thresholds.
func Prescale(m *model.RawMention) int {
	text := strings.ToLower(m.Text)

	score := 0.0
	for _, phrase := range strongIntents {
		if strings.Contains(text, phrase) {
			score += 4
		}
	}
	for _, phrase := range mediumIntents {
		if strings.Contains(text, phrase) {
			score += 2
		}
	}
	for _, word := range urgencyWords {
		if strings.Contains(text, word) {
			score += 3
		}
	}
	if budgetPattern.MatchString(text) {
		score += 5
	}
	for _, place := range targetPlaces {
		if strings.Contains(text, place) {
			score += 2
		}
	}

	score += math.Min(2, float64(m.Engagement.Comments)/5)
	score += math.Min(1, float64(m.Engagement.Score)/15)

	return int(math.Round(score))
}

// MentionsBudget reports whether a mention's text carries a currency symbol
// or the word "budget". Used by the qualification gate.
func MentionsBudget(m *model.RawMention) bool {
	text := strings.ToLower(m.Text)
	return strings.Contains(text, "budget") || strings.Contains(text, "$")
}
