package catalog

import (
	"encoding/json"
	"os"
	"strings"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// CareerRecord is one entry in the career catalog. Unknown fields in a source
// dataset are ignored during decoding.
type CareerRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	RequiredSkills  []string `json:"required_skills"`
	FriendlySkills  []string `json:"friendly_skills"`
	SalaryRange     []int    `json:"salary_range"`
	Remote          bool     `json:"remote"`
	FreelanceViable bool     `json:"freelance_viable"`
	EntryPath       []string `json:"entry_path"`
	GoodForPain     []string `json:"good_for_pain"`
	TrendRelevance  float64  `json:"trend_relevance"`
	Resources       []string `json:"resources"`
}

// Catalog owns the full set of career records plus two derived indexes. It is
// built once at startup and read-only afterwards, so concurrent readers need
// no locking.
type Catalog struct {
	Careers []*CareerRecord

	skillIndex map[string][]string
	painIndex  map[string][]string
}

//go:embed career_map.json
var defaultDataset []byte

// New builds a catalog from the provided records, preserving their order, and
// derives the skill and pain-point indexes. Required and friendly skills are
// indexed lowercased; pain-point labels additionally get internal whitespace
// replaced with underscores.
func New(careers []*CareerRecord) *Catalog {
	c := &Catalog{
		Careers:    careers,
		skillIndex: make(map[string][]string),
		painIndex:  make(map[string][]string),
	}

	for _, career := range careers {
		for _, skill := range career.RequiredSkills {
			c.indexSkill(skill, career.ID)
		}
		for _, skill := range career.FriendlySkills {
			c.indexSkill(skill, career.ID)
		}
		for _, pain := range career.GoodForPain {
			key := NormalizePain(pain)
			if key == "" {
				continue
			}
			c.painIndex[key] = append(c.painIndex[key], career.ID)
		}
	}

	return c
}

func (c *Catalog) indexSkill(skill, id string) {
	key := NormalizeSkill(skill)
	if key == "" {
		return
	}
	c.skillIndex[key] = append(c.skillIndex[key], id)
}

// Load reads a career dataset from the given path. A missing, unreadable or
// corrupt dataset yields an empty catalog rather than an error: matching on an
// empty catalog degrades to zero results, which the callers already handle.
func Load(path string, logger *zap.Logger) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Warn("career dataset is not readable, continuing with an empty catalog",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return New(nil)
	}

	return parse(data, logger)
}

// Default returns the catalog built from the embedded dataset.
func Default(logger *zap.Logger) *Catalog {
	return parse(defaultDataset, logger)
}

func parse(data []byte, logger *zap.Logger) *Catalog {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		if logger != nil {
			logger.Warn("career dataset is not valid json, continuing with an empty catalog", zap.Error(err))
		}
		return New(nil)
	}

	var careers []*CareerRecord
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &careers,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(payload["careers"]); err != nil {
		if logger != nil {
			logger.Warn("career dataset has an unexpected shape, continuing with an empty catalog", zap.Error(err))
		}
		return New(nil)
	}

	c := New(careers)
	c.warnOnInvariants(logger)

	return c
}

// warnOnInvariants reports malformed records. Violations are tolerated: lookups
// keep first-match semantics and ranking skips nothing fatal.
func (c *Catalog) warnOnInvariants(logger *zap.Logger) {
	if logger == nil {
		return
	}

	seen := make(map[string]bool, len(c.Careers))
	for _, career := range c.Careers {
		if seen[career.ID] {
			logger.Warn("duplicate career id in dataset, first occurrence wins", zap.String("career_id", career.ID))
		}
		seen[career.ID] = true

		if len(career.SalaryRange) == 2 && career.SalaryRange[0] > career.SalaryRange[1] {
			logger.Warn("career salary range is inverted", zap.String("career_id", career.ID))
		}
		if career.TrendRelevance < 0 || career.TrendRelevance > 1 {
			logger.Warn("career trend relevance is out of [0,1]", zap.String("career_id", career.ID))
		}
	}
}

func (c *Catalog) Len() int {
	return len(c.Careers)
}

// Lookup returns the career with the given id, or nil. On a malformed dataset
// with duplicate ids the first occurrence is returned.
func (c *Catalog) Lookup(id string) *CareerRecord {
	for _, career := range c.Careers {
		if career.ID == id {
			return career
		}
	}
	return nil
}

// CareersForSkill returns ids of careers whose required or friendly skills
// include the given term. Matching is exact after normalization.
func (c *Catalog) CareersForSkill(term string) []string {
	return c.skillIndex[NormalizeSkill(term)]
}

// CareersForPain returns ids of careers said to alleviate the given pain point.
func (c *Catalog) CareersForPain(term string) []string {
	return c.painIndex[NormalizePain(term)]
}

// NormalizeSkill lowercases and trims a skill label.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePain lowercases a pain-point label and replaces internal whitespace
// with underscores, matching the dataset key convention.
func NormalizePain(s string) string {
	return strings.ReplaceAll(NormalizeSkill(s), " ", "_")
}
