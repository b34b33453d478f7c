// Package engine ranks catalog careers against a user's normalized skills and
// pain points and estimates how hard a given pivot would be. Every operation
// is a pure in-memory computation over an immutable catalog.
package engine

import (
	"sort"
	"strings"

	"github.com/spigell/pivot-navigator/internal/catalog"
)

// MaxMatches caps the shortlist returned by FindMatches.
const MaxMatches = 3

const (
	DifficultyLow     = "low"
	DifficultyMedium  = "medium"
	DifficultyHigh    = "high"
	DifficultyUnknown = "unknown"
)

// DifficultyEstimate describes the heuristic skill gap between a user and a
// target career. When Difficulty is "unknown" the remaining fields carry no
// meaning and callers must not interpret them.
type DifficultyEstimate struct {
	Difficulty           string   `json:"difficulty"`
	EstimatedMonths      string   `json:"estimated_months,omitempty"`
	SkillMatchPercentage int      `json:"skill_match_percentage"`
	SkillsToDevelop      []string `json:"skills_to_develop,omitempty"`
}

// Unknown reports whether the estimate is the not-found sentinel.
func (d *DifficultyEstimate) Unknown() bool {
	return d.Difficulty == DifficultyUnknown
}

// FindMatches returns up to MaxMatches careers whose indexed skills or
// alleviated pain points intersect the user's terms. Careers matching on both
// axes rank no higher than careers matching on one: candidates are a plain set
// union. The result is ordered by trend relevance descending, ties broken by
// catalog order, and an empty result is a normal outcome, not an error.
func FindMatches(skills, painPoints []string, cat *catalog.Catalog) []*catalog.CareerRecord {
	candidates := make(map[string]struct{})

	for _, skill := range skills {
		for _, id := range cat.CareersForSkill(skill) {
			candidates[id] = struct{}{}
		}
	}

	for _, pain := range painPoints {
		for _, id := range cat.CareersForPain(pain) {
			candidates[id] = struct{}{}
		}
	}

	// Resolving via catalog order keeps the pass deterministic and silently
	// skips ids without a backing record.
	matched := make([]*catalog.CareerRecord, 0, len(candidates))
	for _, career := range cat.Careers {
		if _, ok := candidates[career.ID]; !ok {
			continue
		}
		matched = append(matched, career)
		delete(candidates, career.ID)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TrendRelevance > matched[j].TrendRelevance
	})

	if len(matched) > MaxMatches {
		matched = matched[:MaxMatches]
	}

	return matched
}

// EstimateDifficulty classifies the pivot from the user's skills to the target
// career. An unknown target yields the "unknown" sentinel instead of an error.
//
// Matching is a deliberately crude substring heuristic against the flattened
// friendly-skill list: forgiving of multi-word phrasing, but a short term like
// "art" will also match inside "smart". Preserved as the ranking contract.
func EstimateDifficulty(targetID string, userSkills []string, cat *catalog.Catalog) *DifficultyEstimate {
	target := cat.Lookup(targetID)
	if target == nil {
		return &DifficultyEstimate{Difficulty: DifficultyUnknown}
	}

	friendly := strings.ToLower(strings.Join(target.FriendlySkills, ", "))

	matches := 0
	for _, skill := range userSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if strings.Contains(friendly, skill) {
			matches++
		}
	}

	totalNeeded := len(target.RequiredSkills)
	pct := 0.0
	if totalNeeded > 0 {
		pct = float64(matches) / float64(totalNeeded) * 100
	}

	difficulty := DifficultyHigh
	months := "6-12"
	switch {
	case pct >= 70:
		difficulty = DifficultyLow
		months = "1-2"
	case pct >= 40:
		difficulty = DifficultyMedium
		months = "3-6"
	}

	userBlob := strings.ToLower(strings.Join(userSkills, ", "))
	var toDevelop []string
	for _, required := range target.RequiredSkills {
		if !strings.Contains(userBlob, strings.ToLower(required)) {
			toDevelop = append(toDevelop, required)
		}
	}

	return &DifficultyEstimate{
		Difficulty:           difficulty,
		EstimatedMonths:      months,
		SkillMatchPercentage: int(pct),
		SkillsToDevelop:      toDevelop,
	}
}
