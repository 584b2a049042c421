package insight

import (
	"sort"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Quote selection limits.
const (
	MaxQuotes      = 5
	MinQuoteWords  = 8
	MaxQuoteWords  = 40
	MinQuoteScore  = 2.0
	idealWordsLow  = 12
	idealWordsHigh = 30
	idealLenBonus  = 1.0
)

// QuoteCues score how memorable a sentence is.
var QuoteCues = []pattern.Rule{
	pattern.R(`\b(proud|love|passion|legacy|family|dream|built (?:this|it)|my baby|life's work)\b`, 1.5, "emotion"),
	pattern.R(`\b(worried|tired|scared|exhausted|stress(?:ed|ful)?)\b`, 1.5, "concern"),
	pattern.R(`\d`, 1.0, "quantified"),
	pattern.R(`\b(always|never|every|best|only)\b`, 0.5, "conviction"),
	pattern.R(`\b(i|we)\b`, 0.5, "personal"),
	pattern.R(`!`, 0.5, "emphatic"),
}

// Quotes returns up to limit memorable sentences across all answers, best
// first with ties in answer order.
func Quotes(r model.Responses, limit int) []model.Quote {
	var cands []model.Quote
	seen := make(map[string]bool)
	for _, id := range r.IDs() {
		text := pattern.Normalize(r.Get(id))
		for _, s := range sentences(text) {
			words := pattern.WordCount(s.Text)
			if words < MinQuoteWords || words > MaxQuoteWords {
				continue
			}
			score := pattern.SumRules(s.Text, QuoteCues)
			if words >= idealWordsLow && words <= idealWordsHigh {
				score += idealLenBonus
			}
			if score < MinQuoteScore {
				continue
			}
			k := key(s.Text)
			if seen[k] {
				continue
			}
			seen[k] = true
			cands = append(cands, model.Quote{
				Provenance: model.Provenance{QuestionID: id, Context: pattern.Snippet(text, s.Start, s.End, ContextLen)},
				Text:       s.Text,
				Score:      pattern.Round2(score),
			})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})

	out := []model.Quote{}
	for _, c := range cands {
		if len(out) >= limit {
			break
		}
		out = append(out, c)
	}
	return out
}
