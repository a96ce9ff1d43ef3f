package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/normalize"
)

func newTestLexicon(t *testing.T) *Lexicon {
	t.Helper()
	l, err := NewLexicon()
	require.NoError(t, err)
	return l
}

func TestLexicon_Classify(t *testing.T) {
	l := newTestLexicon(t)

	tests := []struct {
		text string
		want domain.Label
	}{
		{"great video", domain.Positive},
		{"love content", domain.Positive},
		{"terrible audio", domain.Negative},
		{"not good", domain.Negative},
		{"dont like", domain.Negative},
		{"not bad", domain.Positive},
		{"video upload today", domain.Neutral},
		{"", domain.Neutral},
		{"good but bad", domain.Negative},
		{"bad however great", domain.Positive},
		{"awesome!!", domain.Positive},
		{"not sure. great video", domain.Positive},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			labels, err := l.Classify(context.Background(), []string{tt.text})
			require.NoError(t, err)
			assert.Equal(t, []domain.Label{tt.want}, labels)
		})
	}
}

func TestLexicon_PreservesOrderAndLength(t *testing.T) {
	l := newTestLexicon(t)

	labels, err := l.Classify(context.Background(), []string{"awful", "fine", "channel", "excellent"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Label{domain.Negative, domain.Positive, domain.Neutral, domain.Positive}, labels)
}

func TestLexicon_EmptyBatch(t *testing.T) {
	labels, err := newTestLexicon(t).Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestLexicon_NegationWindowExpires(t *testing.T) {
	l := newTestLexicon(t)

	// "good" is four tokens after "not", outside the window.
	assert.Greater(t, l.Score("not one two three good"), 0.0)
	assert.Less(t, l.Score("not one good"), 0.0)
}

func TestLexicon_ScoreRange(t *testing.T) {
	l := newTestLexicon(t)

	for _, text := range []string{"awesome amazing perfect", "worst garbage trash", "not awesome", "good bad good bad"} {
		s := l.Score(text)
		assert.GreaterOrEqual(t, s, -1.0, text)
		assert.LessOrEqual(t, s, 1.0, text)
	}
}

func TestParseLexicon(t *testing.T) {
	l, err := ParseLexicon("# comment\n\nhappy\t0.5\n sad \t -0.5 \n")
	require.NoError(t, err)

	assert.InDelta(t, 0.5, l.Score("happy"), 1e-9)
	assert.InDelta(t, -0.5, l.Score("sad"), 1e-9)
}

func TestParseLexicon_Invalid(t *testing.T) {
	for _, raw := range []string{"", "# only comments\n", "happy 0.5\n", "happy\tvery\n", "happy\t2\n"} {
		_, err := ParseLexicon(raw)
		assert.Error(t, err, "%q", raw)
	}
}

func TestLexicon_NegationSurvivesNormalization(t *testing.T) {
	lemmatizer, err := normalize.NewEnglishLemmatizer()
	require.NoError(t, err)
	n := normalize.New(lemmatizer)
	l := newTestLexicon(t)

	tests := []struct {
		comment string
		want    domain.Label
	}{
		{"I don't like this", domain.Negative},
		{"This isn't good.", domain.Negative},
		{"I never liked it", domain.Negative},
		{"Not bad at all", domain.Positive},
		{"I like this", domain.Positive},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			labels, err := l.Classify(context.Background(), n.NormalizeAll([]string{tt.comment}))
			require.NoError(t, err)
			assert.Equal(t, []domain.Label{tt.want}, labels)
		})
	}
}
