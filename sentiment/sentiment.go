// Package sentiment classifies chat message text into a three-way
// category using a compound polarity score in [-1, 1]. Scoring is
// delegated to the VADER model (govader); the category is derived on
// demand and never stored as authoritative state.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Category is the derived sentiment of a piece of text.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Fixed VADER convention: compound >= +0.05 is positive, <= -0.05 is
// negative, everything between is neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer produces a compound polarity score in [-1, 1] for a text.
type Scorer interface {
	Compound(text string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (v *vaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// Classifier maps text to a Category. Safe for concurrent use.
type Classifier struct {
	scorer Scorer
}

// NewClassifier returns a classifier backed by the VADER analyzer.
func NewClassifier() *Classifier {
	return &Classifier{scorer: &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}}
}

// NewClassifierWithScorer substitutes the scoring capability, mainly for
// tests.
func NewClassifierWithScorer(s Scorer) *Classifier {
	return &Classifier{scorer: s}
}

// Classify returns the category for text. Blank or whitespace-only text is
// neutral without consulting the scorer.
func (c *Classifier) Classify(text string) Category {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}
	score := c.scorer.Compound(text)
	switch {
	case score >= positiveThreshold:
		return Positive
	case score <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
