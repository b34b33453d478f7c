package gemini

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/pivot-navigator/internal/ai"
	"github.com/spigell/pivot-navigator/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompts/*.md
var promptFS embed.FS

const defaultMaxLogLength = 200

var (
	defaultAccomplishments = []string{
		"Managed customer interactions with 95% satisfaction rate",
		"Handled 50+ inquiries daily with 99% accuracy",
		"Trained 3 junior team members",
	}
	defaultFears = []string{
		"I'm too old",
		"I don't have the right skills",
		"I can't afford to learn",
	}
	defaultDreams = []string{
		"Work remotely",
		"Help people",
		"Make good money doing meaningful work",
	}
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Advisor renders the embedded prompt templates and delegates text generation
// to Gemini. It implements ai.Advisor.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) PivotAnalysis(ctx context.Context, req *ai.AnalysisRequest) (string, error) {
	if req == nil || req.Profile == nil {
		return "", fmt.Errorf("profile is required")
	}

	return a.generate(ctx, "pivot_analysis", map[string]string{
		"CONTEXT":      matchContext(req),
		"CURRENT_ROLE": req.Profile.CurrentRole,
		"SKILLS":       strings.Join(req.Profile.Skills, ", "),
		"PAIN_POINTS":  strings.Join(req.Profile.PainPoints, ", "),
		"INTERESTS":    strings.Join(req.Profile.Interests, ", "),
		"CONSTRAINTS":  orNone(req.Profile.Constraints),
	})
}

func (a *Advisor) ThreeStepPlan(ctx context.Context, req *ai.PlanRequest) (string, error) {
	if err := validatePlanRequest(req); err != nil {
		return "", err
	}

	return a.generate(ctx, "three_step_plan", map[string]string{
		"PERSON_NAME":   req.Profile.Name,
		"CURRENT_ROLE":  req.Profile.CurrentRole,
		"TARGET_ROLE":   req.Target.Title,
		"SKILLS":        strings.Join(req.Profile.Skills, ", "),
		"CONSTRAINTS":   orNone(req.Profile.Constraints),
		"BUDGET":        req.Profile.Budget,
		"TIME_PER_WEEK": req.Profile.TimeAvailability,
	})
}

func (a *Advisor) Monetization(ctx context.Context, req *ai.PlanRequest) (string, error) {
	if err := validatePlanRequest(req); err != nil {
		return "", err
	}

	return a.generate(ctx, "monetization", map[string]string{
		"PERSON_NAME":   req.Profile.Name,
		"TARGET_ROLE":   req.Target.Title,
		"SKILLS":        strings.Join(req.Profile.Skills, ", "),
		"CONSTRAINTS":   orNone(req.Profile.Constraints),
		"TIME_PER_WEEK": req.Profile.TimeAvailability,
		"REMOTE":        req.Profile.RemotePreference,
	})
}

func (a *Advisor) ResumeReframe(ctx context.Context, req *ai.ReframeRequest) (string, error) {
	if req == nil || req.Profile == nil || req.Target == nil {
		return "", fmt.Errorf("profile and target career are required")
	}

	accomplishments := req.Accomplishments
	if len(accomplishments) == 0 {
		accomplishments = defaultAccomplishments
	}

	return a.generate(ctx, "resume_reframe", map[string]string{
		"PERSON_NAME":     req.Profile.Name,
		"CURRENT_ROLE":    req.Profile.CurrentRole,
		"TARGET_ROLE":     req.Target.Title,
		"ACCOMPLISHMENTS": bulletList(accomplishments),
	})
}

func (a *Advisor) MindsetCoaching(ctx context.Context, req *ai.CoachingRequest) (string, error) {
	if req == nil || req.Profile == nil {
		return "", fmt.Errorf("profile is required")
	}

	fears := req.Fears
	if len(fears) == 0 {
		fears = defaultFears
	}
	dreams := req.Dreams
	if len(dreams) == 0 {
		dreams = defaultDreams
	}

	pains := req.Profile.PainPoints
	if len(pains) > 2 {
		pains = pains[:2]
	}
	situation := fmt.Sprintf("They're in %s and hate %s",
		req.Profile.CurrentRole, strings.Join(pains, ", "))

	return a.generate(ctx, "mindset_coaching", map[string]string{
		"PERSON_NAME": req.Profile.Name,
		"SITUATION":   situation,
		"FEARS":       bulletList(fears),
		"DREAMS":      bulletList(dreams),
		"CONSTRAINTS": orNone(req.Profile.Constraints),
	})
}

func (a *Advisor) OutreachMessage(ctx context.Context, req *ai.OutreachRequest) (string, error) {
	if req == nil || req.Profile == nil || req.Target == nil {
		return "", fmt.Errorf("profile and target career are required")
	}

	return a.generate(ctx, "outreach", map[string]string{
		"PERSON_NAME":  req.Profile.Name,
		"CURRENT_ROLE": req.Profile.CurrentRole,
		"TARGET_ROLE":  req.Target.Title,
		"MOTIVATION":   orNone(req.Motivation),
		"GOAL":         orNone(req.Goal),
	})
}

func (a *Advisor) generate(ctx context.Context, name string, values map[string]string) (string, error) {
	prompt, err := renderPrompt(name, values)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content request",
		zap.String("prompt_name", name),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("prompt_name", name),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

func renderPrompt(name string, values map[string]string) (string, error) {
	data, err := promptFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("load prompt template %s: %w", name, err)
	}

	prompt := string(data)
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return prompt, nil
}

// matchContext renders the engine's shortlist so the model grounds its
// suggestions in the catalog instead of inventing careers.
func matchContext(req *ai.AnalysisRequest) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Current Role: %s\n", req.Profile.CurrentRole))
	builder.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(req.Profile.Skills, ", ")))
	builder.WriteString(fmt.Sprintf("Pain Points: %s\n", strings.Join(req.Profile.PainPoints, ", ")))
	builder.WriteString(fmt.Sprintf("Interests: %s\n", strings.Join(req.Profile.Interests, ", ")))

	if len(req.Matches) > 0 {
		builder.WriteString("\nPotential Career Matches (from database):\n")
		for _, career := range req.Matches {
			builder.WriteString(fmt.Sprintf("  - %s: %s\n", career.Title, career.ID))
		}
	}

	return builder.String()
}

func validatePlanRequest(req *ai.PlanRequest) error {
	if req == nil || req.Profile == nil || req.Target == nil {
		return fmt.Errorf("profile and target career are required")
	}
	return nil
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "none"
	}
	return s
}
