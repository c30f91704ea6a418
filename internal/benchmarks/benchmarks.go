// Package benchmarks holds curated industry efficiency benchmarks used to seed
// gain percentages and cite sources in generated rationale.
package benchmarks

import (
	"fmt"
	"strings"
)

// DefaultRelevant is how many benchmarks Relevant returns when max is not positive.
const DefaultRelevant = 3

type Benchmark struct {
	Category string `json:"category"`
	Metric   string `json:"metric"`
	LowPct   int    `json:"lowPct"`
	HighPct  int    `json:"highPct"`
	Source   string `json:"source"`
	Year     int    `json:"year"`
}

type Profile struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Keywords       []string    `json:"keywords"`
	Benchmarks     []Benchmark `json:"benchmarks"`
	DefaultGainPct float64     `json:"defaultGainPct"`
}

func Profiles() []Profile {
	return profiles
}

// MatchProfile scores every profile by how many of its keywords occur in text
// (case-insensitive substring match) and returns the highest scorer. Ties keep the
// earlier profile; no hits at all yields the general profile.
func MatchProfile(text string) Profile {
	lower := strings.ToLower(text)

	best := profiles[len(profiles)-1]
	bestScore := 0
	for _, p := range profiles {
		score := 0
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}

	return best
}

func Relevant(text string, max int) (Profile, []Benchmark) {
	if max <= 0 {
		max = DefaultRelevant
	}

	p := MatchProfile(text)
	if max > len(p.Benchmarks) {
		max = len(p.Benchmarks)
	}

	return p, p.Benchmarks[:max]
}

// Citation renders b as "60-75% time reduction in document review (Source, 2023)".
func Citation(b Benchmark) string {
	return fmt.Sprintf("%d-%d%% %s (%s)", b.LowPct, b.HighPct, strings.ToLower(b.Metric), b.Source)
}

func SuggestGain(text string) float64 {
	return MatchProfile(text).DefaultGainPct
}
