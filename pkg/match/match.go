package match

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Confidence buckets a similarity score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // score < 0.70
	ConfidenceLow                      // score >= 0.70
	ConfidenceMedium                   // score >= 0.85
	ConfidenceHigh                     // score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Result is one scored candidate.
type Result struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
}

// Candidate is a searchable title with its owning id.
type Candidate struct {
	ID    string
	Title string
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// score compares a normalized query against a normalized title.
// Jaro-Winkler favors shared prefixes, which suits titles; a query that is
// a substring of the title counts as a strong match regardless, so partial
// queries like "lobby" still find "Lobby Morning Loop".
func score(query, title string) float64 {
	s := float64(edlib.JaroWinklerSimilarity(query, title))
	if query != "" && strings.Contains(title, query) && s < 0.95 {
		return 0.95
	}
	return s
}

// Best returns the highest-scoring candidate for a query, or a zero Result
// with ConfidenceNone when nothing clears the low threshold.
func Best(query string, candidates []Candidate) Result {
	q := Normalize(query)
	best := Result{}
	for _, c := range candidates {
		s := score(q, Normalize(c.Title))
		if s > best.Score {
			best = Result{ID: c.ID, Title: c.Title, Score: s}
		}
	}
	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		return Result{}
	}
	return best
}

// Rank scores every candidate against a query and returns those at or above
// the low threshold, best first.
func Rank(query string, candidates []Candidate) []Result {
	q := Normalize(query)
	var results []Result
	for _, c := range candidates {
		s := score(q, Normalize(c.Title))
		conf := confidenceFor(s)
		if conf == ConfidenceNone {
			continue
		}
		results = append(results, Result{ID: c.ID, Title: c.Title, Score: s, Confidence: conf})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
