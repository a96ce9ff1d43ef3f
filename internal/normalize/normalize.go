// Package normalize turns raw comment text into the canonical form the
// classification oracle is trained on.
//
// The pipeline runs six steps in order: lowercase and trim, fold newlines,
// strip everything but ASCII letters, digits, whitespace
// and the marks "!?.,", drop English stop-words (keeping not, but, however, no, yet), lemmatize,
// and rejoin with single spaces.
//
// Normalization never fails visibly. When a step faults (invalid UTF-8,
// a panicking lemmatizer) the text as of the last completed step is
// returned and the fault is reported to the DegradationObserver only.
//
// A Normalizer is safe for concurrent use by multiple goroutines.
package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/pscheid92/commentpulse/internal/domain"
)

var errInvalidUTF8 = errors.New("input is not valid UTF-8")

// Lemmatizer maps a word to its dictionary base form. Unknown words are
// returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

// DegradationObserver is told about absorbed normalization faults.
type DegradationObserver interface {
	NormalizationDegraded(stage string)
}

// NewEnglishLemmatizer loads golem's English dictionary. The result is
// read-only and can be shared across goroutines.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}
	return l, nil
}

type stage struct {
	name string
	run  func(string) (string, error)
}

// Normalizer runs the comment normalization pipeline.
type Normalizer struct {
	lemmatizer Lemmatizer
	observer   DegradationObserver
	stages     []stage
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithObserver reports absorbed faults to o.
func WithObserver(o DegradationObserver) Option {
	return func(n *Normalizer) {
		n.observer = o
	}
}

// New creates a Normalizer using the given lemmatizer.
func New(lemmatizer Lemmatizer, opts ...Option) *Normalizer {
	n := &Normalizer{lemmatizer: lemmatizer}
	for _, opt := range opts {
		opt(n)
	}
	n.stages = []stage{
		{name: "lowercase", run: lowercase},
		{name: "newlines", run: foldNewlines},
		{name: "strip", run: stripNoise},
		{name: "stopwords", run: removeStopwords},
		{name: "lemmatize", run: n.lemmatize},
		{name: "join", run: joinTokens},
	}
	return n
}

// Normalize returns the canonical form of text.
func (n *Normalizer) Normalize(text string) string {
	out := text
	for _, st := range n.stages {
		next, err := runStage(st, out)
		if err != nil {
			n.degraded(st.name, err)
			return out
		}
		out = next
	}
	return out
}

// NormalizeComment returns the canonical form of text as tokens.
func (n *Normalizer) NormalizeComment(text string) domain.NormalizedComment {
	return domain.NormalizedComment{Tokens: strings.Fields(n.Normalize(text))}
}

// NormalizeAll normalizes every text, preserving order.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

func (n *Normalizer) degraded(stageName string, err error) {
	slog.Debug("Normalization degraded", "stage", stageName, "error", err)
	if n.observer != nil {
		n.observer.NormalizationDegraded(stageName)
	}
}

// runStage converts a panic inside a stage into an error.
func runStage(st stage, in string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage %s panicked: %v", st.name, r)
		}
	}()
	return st.run(in)
}

func lowercase(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", errInvalidUTF8
	}
	return strings.TrimSpace(strings.ToLower(s)), nil
}

func foldNewlines(s string) (string, error) {
	return strings.ReplaceAll(s, "\n", " "), nil
}

// stripNoise keeps ASCII letters and digits, whitespace and the marks "!?.,".
func stripNoise(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '!' || r == '?' || r == '.' || r == ',':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

func removeStopwords(s string) (string, error) {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !dropped(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " "), nil
}

func (n *Normalizer) lemmatize(s string) (string, error) {
	words := strings.Fields(s)
	for i, w := range words {
		if lemma := n.lemmatizer.Lemma(w); n.acceptLemma(w, lemma) {
			words[i] = lemma
		}
	}
	return strings.Join(words, " "), nil
}

// acceptLemma reports whether lemma may replace word. Negations stay as
// written, and a lemma must survive a second pass unchanged: "dont" must not
// become the stop-word "do", and "thee" must not become "you".
func (n *Normalizer) acceptLemma(word, lemma string) bool {
	switch {
	case lemma == word:
		return true
	case lemma == "" || IsNegation(word) || IsStopword(lemma):
		return false
	case strings.IndexFunc(lemma, notCanonical) >= 0:
		return false
	}
	return n.lemmatizer.Lemma(lemma) == lemma
}

func notCanonical(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsUpper(r) || !keepRune(r)
}

func joinTokens(s string) (string, error) {
	return strings.Join(strings.Fields(s), " "), nil
}
