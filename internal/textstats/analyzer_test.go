package textstats_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spherical/internal/textstats"
)

func TestAnalyze_Empty(t *testing.T) {
	result := textstats.Analyze("")

	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, 0, result.CharCount)
	assert.Equal(t, 0, result.SentenceCount)
	assert.Empty(t, result.WordFrequency)
}

func TestAnalyze_CountsAndStopWords(t *testing.T) {
	result := textstats.Analyze("The cat sat. The dog ran!")

	assert.Equal(t, 6, result.WordCount)
	assert.Equal(t, 2, result.SentenceCount)

	// "the" is a stop word; the four content words each appear once,
	// in discovery order.
	require.Len(t, result.WordFrequency, 4)
	words := make([]string, 0, 4)
	for _, wf := range result.WordFrequency {
		assert.Equal(t, 1, wf.Frequency)
		words = append(words, wf.Word)
	}
	assert.Equal(t, []string{"cat", "sat", "dog", "ran"}, words)
}

func TestAnalyze_NoTerminators(t *testing.T) {
	result := textstats.Analyze("words without any sentence terminator")

	assert.Equal(t, 5, result.WordCount)
	assert.Equal(t, 0, result.SentenceCount)
}

func TestAnalyze_FrequencyOrderingAndCaseFolding(t *testing.T) {
	result := textstats.Analyze("Alpha beta alpha ALPHA beta gamma.")

	require.True(t, len(result.WordFrequency) >= 3)
	assert.Equal(t, "alpha", result.WordFrequency[0].Word)
	assert.Equal(t, 3, result.WordFrequency[0].Frequency)
	assert.Equal(t, "beta", result.WordFrequency[1].Word)
	assert.Equal(t, 2, result.WordFrequency[1].Frequency)
	assert.Equal(t, "gamma", result.WordFrequency[2].Word)
}

func TestAnalyze_ExcludesIntegerTokens(t *testing.T) {
	result := textstats.Analyze("code 42 code 42 42")

	require.Len(t, result.WordFrequency, 1)
	assert.Equal(t, "code", result.WordFrequency[0].Word)
	assert.Equal(t, 2, result.WordFrequency[0].Frequency)
	// integers still count as words
	assert.Equal(t, 5, result.WordCount)
}

func TestAnalyze_CapsFrequencyTable(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("unique")
		b.WriteByte('a' + byte(i%26))
		b.WriteString("word ")
	}
	result := textstats.Analyze(b.String())

	assert.LessOrEqual(t, len(result.WordFrequency), 20)
}

func TestAnalyze_SentenceRuns(t *testing.T) {
	// Consecutive terminators belong to one sentence run.
	result := textstats.Analyze("Really?! Yes. Ok...")

	assert.Equal(t, 3, result.SentenceCount)
}
