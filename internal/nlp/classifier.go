package nlp

// Classify scores every intent in the table against the text and
// returns the best one with a confidence in [0, 1].
//
// Each intent scores matches²/total_patterns: an intent with a larger
// share of its own pattern set satisfied beats one with the same raw
// hit count spread over more patterns. Ties resolve to the intent
// declared first in intentTable.
func Classify(text string) (string, float64) {
	best := IntentUnknown
	bestScore := 0.0

	for _, ip := range intentTable {
		matches := 0
		for _, p := range ip.patterns {
			if p.MatchString(text) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}

		total := float64(len(ip.patterns))
		score := float64(matches) * float64(matches) / total

		if score > bestScore {
			best = ip.name
			bestScore = score
		}
	}

	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return best, bestScore
}
