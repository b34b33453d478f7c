// Package export writes a finished pivot analysis to disk as Markdown or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spigell/pivot-navigator/internal/catalog"
	"github.com/spigell/pivot-navigator/internal/engine"
	"github.com/spigell/pivot-navigator/internal/profile"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Report is the complete result of one analysis run.
type Report struct {
	Profile     *profile.Profile `json:"profile"`
	Analysis    string           `json:"analysis,omitempty"`
	Careers     []*CareerReport  `json:"careers,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// CareerReport groups everything produced for one selected career.
type CareerReport struct {
	Career        *catalog.CareerRecord      `json:"career"`
	Difficulty    *engine.DifficultyEstimate `json:"difficulty,omitempty"`
	Plan          string                     `json:"plan,omitempty"`
	Monetization  string                     `json:"monetization,omitempty"`
	ResumeReframe string                     `json:"resume_reframe,omitempty"`
	Coaching      string                     `json:"coaching,omitempty"`
}

// Write renders the report in the requested format and writes it into dir,
// returning the path of the created file. An empty dir means the current
// directory; the filename carries a timestamp so runs never clobber each other.
func Write(r *Report, dir, format string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("report is required")
	}

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
		r.GeneratedAt = generated
	}

	var (
		data []byte
		ext  string
		err  error
	)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatMarkdown, "", "md":
		data = []byte(r.ToMarkdown())
		ext = "md"
	case FormatJSON:
		data, err = json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal report: %w", err)
		}
		ext = "json"
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	name := fmt.Sprintf("pivot_plan_%s.%s", generated.Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

// ToMarkdown renders the report as a standalone Markdown document.
func (r *Report) ToMarkdown() string {
	var b strings.Builder

	name := "You"
	if r.Profile != nil && r.Profile.Name != "" {
		name = r.Profile.Name
	}

	fmt.Fprintf(&b, "# Career Pivot Plan for %s\n", name)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", r.GeneratedAt.Format("January 2, 2006 at 3:04 PM"))

	if r.Profile != nil {
		b.WriteString("## Your Input\n\n")
		fmt.Fprintf(&b, "**Current Role**: %s\n", r.Profile.CurrentRole)
		fmt.Fprintf(&b, "**Skills**: %s\n", strings.Join(r.Profile.Skills, ", "))
		fmt.Fprintf(&b, "**Pain Points**: %s\n", strings.Join(r.Profile.PainPoints, ", "))
		fmt.Fprintf(&b, "**Interests**: %s\n\n", strings.Join(r.Profile.Interests, ", "))
	}

	if r.Analysis != "" {
		b.WriteString("## Analysis & Recommendations\n\n")
		b.WriteString(r.Analysis)
		b.WriteString("\n\n")
	}

	for _, career := range r.Careers {
		career.writeMarkdown(&b)
	}

	b.WriteString("---\n\n")
	b.WriteString("_Career Pivot Navigator. Built for neurodivergent, marginalized, and burnt-out professionals._\n")

	return b.String()
}

func (c *CareerReport) writeMarkdown(b *strings.Builder) {
	if c.Career == nil {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", c.Career.Title)

	if len(c.Career.SalaryRange) == 2 {
		fmt.Fprintf(b, "**Salary Range**: $%d - $%d\n", c.Career.SalaryRange[0], c.Career.SalaryRange[1])
	}
	fmt.Fprintf(b, "**Remote**: %s\n", yesNo(c.Career.Remote))
	fmt.Fprintf(b, "**Freelance Viable**: %s\n", yesNo(c.Career.FreelanceViable))
	if len(c.Career.EntryPath) > 0 {
		fmt.Fprintf(b, "**Entry Path**: %s\n", strings.Join(c.Career.EntryPath, " -> "))
	}
	b.WriteString("\n")

	if c.Difficulty != nil && !c.Difficulty.Unknown() {
		b.WriteString("### Transition Difficulty\n\n")
		fmt.Fprintf(b, "**Difficulty**: %s\n", c.Difficulty.Difficulty)
		fmt.Fprintf(b, "**Estimated Timeline**: %s months\n", c.Difficulty.EstimatedMonths)
		fmt.Fprintf(b, "**Skill Match**: %d%%\n", c.Difficulty.SkillMatchPercentage)
		if len(c.Difficulty.SkillsToDevelop) > 0 {
			fmt.Fprintf(b, "**Skills to Develop**: %s\n", strings.Join(c.Difficulty.SkillsToDevelop, ", "))
		}
		b.WriteString("\n")
	}

	writeSection(b, "Your 3-Step Pivot Plan", c.Plan)
	writeSection(b, "How to Earn During the Pivot", c.Monetization)
	writeSection(b, "Resume Reframing", c.ResumeReframe)
	writeSection(b, "Mindset Coaching", c.Coaching)

	if len(c.Career.Resources) > 0 {
		b.WriteString("### Resources\n\n")
		for _, resource := range c.Career.Resources {
			fmt.Fprintf(b, "- %s\n", resource)
		}
		b.WriteString("\n")
	}
}

func writeSection(b *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(b, "### %s\n\n%s\n\n", title, body)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
