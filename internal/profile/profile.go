// Package profile normalizes raw free-text user input into the shape the
// matching engine consumes. Profiles are ephemeral: one per analysis request,
// never shared.
package profile

import (
	"fmt"
	"regexp"
	"strings"
)

var termSeparator = regexp.MustCompile(`[,\n]+`)

// RawInput carries the user's answers exactly as collected by the front end.
type RawInput struct {
	Name             string
	CurrentRole      string
	Skills           string
	Hates            string
	Interests        string
	Constraints      string
	Budget           string
	TimeAvailability string
	RemotePreference string
}

// Profile is the normalized per-request view of the user.
type Profile struct {
	Name             string   `json:"name"`
	CurrentRole      string   `json:"current_role"`
	Skills           []string `json:"skills"`
	PainPoints       []string `json:"pain_points"`
	Interests        []string `json:"interests"`
	Constraints      string   `json:"constraints,omitempty"`
	Budget           string   `json:"budget"`
	TimeAvailability string   `json:"time_availability"`
	RemotePreference string   `json:"remote_preference"`
}

// ParseTerms splits comma or newline separated input into a clean list of
// lowercase terms. Empty entries are dropped; order is preserved.
func ParseTerms(raw string) []string {
	parts := termSeparator.Split(strings.ToLower(strings.TrimSpace(raw)), -1)

	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			terms = append(terms, part)
		}
	}
	return terms
}

// Normalize converts raw answers into a Profile, applying the documented
// defaults for missing logistics fields.
func Normalize(in RawInput) *Profile {
	return &Profile{
		Name:             defaultString(in.Name, "You"),
		CurrentRole:      strings.TrimSpace(in.CurrentRole),
		Skills:           ParseTerms(in.Skills),
		PainPoints:       ParseTerms(in.Hates),
		Interests:        ParseTerms(in.Interests),
		Constraints:      strings.TrimSpace(in.Constraints),
		Budget:           strings.ToLower(defaultString(in.Budget, "low")),
		TimeAvailability: defaultString(in.TimeAvailability, "flexible"),
		RemotePreference: strings.ToLower(defaultString(in.RemotePreference, "high")),
	}
}

// Validate checks that the fields the analysis cannot run without are present.
func (p *Profile) Validate() error {
	missing := ""
	switch {
	case p.CurrentRole == "":
		missing = "current role"
	case len(p.Skills) == 0:
		missing = "skills"
	case len(p.PainPoints) == 0:
		missing = "pain points"
	case len(p.Interests) == 0:
		missing = "interests"
	}

	if missing != "" {
		return fmt.Errorf("missing required field: %s", missing)
	}
	return nil
}

func defaultString(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
