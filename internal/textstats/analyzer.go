// Package textstats computes lexical statistics over a block of text.
// Pure string processing: deterministic, no I/O, cannot fail.
package textstats

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"spherical/internal/domain"
)

const maxFrequencyEntries = 20

var (
	wordRe     = regexp.MustCompile(`\w+`)
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// stopWords are common English function words plus domain noise words
// ("page", "document") excluded from the frequency table.
var stopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all am an and any are as at
		be because been before being below between both but by can did do
		does doing down during each few for from further had has have having
		he her here hers herself him himself his how i if in into is it
		its itself just me more most my myself no nor not now o of off
		on once only or other our ours ourselves out over own s same she
		should so some such t than that the their theirs them themselves then
		there these they this those through to too under until up very was
		we were what when where which while who whom why will with you your
		yours yourself yourselves page document`) {
		stopWords[w] = true
	}
}

// Analyze computes word, character and sentence counts plus a stop-word
// filtered frequency table capped to the top 20 entries. Counting preserves
// case; frequency grouping is case-folded. Ties keep discovery order.
func Analyze(text string) domain.AnalysisResult {
	words := wordRe.FindAllString(text, -1)

	type entry struct {
		word  string
		count int
	}
	var order []string
	counts := map[string]int{}
	for _, w := range words {
		lower := strings.ToLower(w)
		if stopWords[lower] {
			continue
		}
		if _, err := strconv.Atoi(lower); err == nil {
			continue
		}
		if _, seen := counts[lower]; !seen {
			order = append(order, lower)
		}
		counts[lower]++
	}

	entries := make([]entry, 0, len(order))
	for _, w := range order {
		entries = append(entries, entry{word: w, count: counts[w]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if len(entries) > maxFrequencyEntries {
		entries = entries[:maxFrequencyEntries]
	}

	freq := make([]domain.WordFrequency, 0, len(entries))
	for _, e := range entries {
		freq = append(freq, domain.WordFrequency{Word: e.word, Frequency: e.count})
	}

	return domain.AnalysisResult{
		WordCount:     len(words),
		CharCount:     utf8.RuneCountInString(text),
		SentenceCount: len(sentenceRe.FindAllString(text, -1)),
		WordFrequency: freq,
	}
}
