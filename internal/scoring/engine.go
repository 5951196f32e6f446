// Package scoring implements the heuristic fraud scoring engine for
// Adjuster. Scores are computed from a claim's amount, description, and
// attachment count plus random jitter; the random source is injectable so
// callers can pin the draws.
package scoring

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Score bounds and label thresholds.
const (
	ScoreMin = 5
	ScoreMax = 95

	LabelLow    = "Low"
	LabelMedium = "Medium"
	LabelHigh   = "High"

	highThreshold   = 70
	mediumThreshold = 40

	elevatedAmount = 10000
	severeAmount   = 25000

	shortDescription = 20
	keywordWeight    = 8
)

// Keywords that raise the score when present in a claim description.
// Matching is case-insensitive and counts distinct membership, not
// occurrences.
var keywords = []string{
	"urgent",
	"emergency",
	"immediate",
	"cash",
	"total loss",
	"stolen",
	"hit and run",
	"no fault",
}

// narrativePool holds the generic analysis statements sampled into the
// factor list. Each invocation draws 1-3 without replacement.
var narrativePool = []string{
	"Claim pattern compared against historical submissions",
	"No prior claims found for this policy identifier",
	"Submission timing falls within normal parameters",
	"Reported loss type carries an elevated baseline risk",
	"Geographic risk indicators within expected range",
	"Documentation consistency check returned no anomalies",
}

// Source supplies uniform random integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type systemSource struct{}

func (systemSource) IntN(n int) int { return rand.IntN(n) }

// Result holds one scoring outcome.
type Result struct {
	Score   int      `json:"score"`
	Label   string   `json:"label"`
	Factors []string `json:"factors"`
}

// Engine computes fraud scores from claim inputs.
type Engine struct {
	src Source
}

// NewEngine creates an Engine using the given random source.
// A nil source falls back to the shared math/rand/v2 generator.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = systemSource{}
	}
	return &Engine{src: src}
}

// Evaluate computes the score, label, and explanatory factors for the
// given claim inputs. Returns ErrInvalidAmount for non-finite or
// non-positive amounts.
func (e *Engine) Evaluate(amount float64, description string, fileCount int) (*Result, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	score := e.between(10, 90)

	if amount > elevatedAmount {
		score += e.between(10, 30)
	}
	if amount > severeAmount {
		score += e.between(10, 25)
	}
	if utf8.RuneCountInString(description) < shortDescription {
		score += e.between(5, 20)
	}

	lowered := strings.ToLower(description)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			score += keywordWeight
		}
	}

	score = min(max(score, ScoreMin), ScoreMax)

	return &Result{
		Score:   score,
		Label:   label(score),
		Factors: e.factors(amount, description, fileCount),
	}, nil
}

// between returns a uniform random integer in [lo, hi].
func (e *Engine) between(lo, hi int) int {
	return lo + e.src.IntN(hi-lo+1)
}

func label(score int) string {
	switch {
	case score >= highThreshold:
		return LabelHigh
	case score >= mediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

func (e *Engine) factors(amount float64, description string, fileCount int) []string {
	var factors []string

	if amount > severeAmount {
		factors = append(factors, fmt.Sprintf(
			"High claim amount of $%s exceeds standard thresholds",
			strconv.FormatFloat(amount, 'f', -1, 64),
		))
	}

	if utf8.RuneCountInString(description) < shortDescription {
		factors = append(factors, "Claim description is unusually brief")
	}

	if fileCount > 0 {
		factors = append(factors, fmt.Sprintf("%d supporting file(s) reviewed", fileCount))
	} else {
		factors = append(factors, "Limited supporting documentation provided")
	}

	factors = append(factors, "Automated risk analysis complete")

	pool := make([]string, len(narrativePool))
	copy(pool, narrativePool)

	count := e.between(1, 3)
	for range count {
		idx := e.src.IntN(len(pool))
		factors = append(factors, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return factors
}
