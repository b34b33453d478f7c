package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/pivot-navigator/internal/ai"
	"github.com/spigell/pivot-navigator/internal/catalog"
	"github.com/spigell/pivot-navigator/internal/profile"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:             "Alex",
		CurrentRole:      "Customer Service Rep",
		Skills:           []string{"communication", "de-escalation"},
		PainPoints:       []string{"angry customers", "low pay", "no growth"},
		Interests:        []string{"tech", "writing"},
		Budget:           "low",
		TimeAvailability: "evenings",
		RemotePreference: "high",
	}
}

func testTarget() *catalog.CareerRecord {
	return &catalog.CareerRecord{ID: "ux_researcher", Title: "UX Researcher"}
}

func TestPivotAnalysisRendersTemplate(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "  analysis text  "}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	got, err := advisor.PivotAnalysis(context.Background(), &ai.AnalysisRequest{
		Profile: testProfile(),
		Matches: []*catalog.CareerRecord{testTarget()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "analysis text" {
		t.Fatalf("expected trimmed response, got %q", got)
	}

	if len(stub.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(stub.prompts))
	}
	prompt := stub.prompts[0]

	for _, expected := range []string{
		"Customer Service Rep",
		"communication, de-escalation",
		"angry customers, low pay, no growth",
		"tech, writing",
		"Potential Career Matches (from database):",
		"UX Researcher",
	} {
		if !strings.Contains(prompt, expected) {
			t.Fatalf("expected prompt to contain %q\n%s", expected, prompt)
		}
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", prompt)
	}
}

func TestPivotAnalysisRequiresProfile(t *testing.T) {
	t.Parallel()

	advisor := NewAdvisor(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := advisor.PivotAnalysis(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for nil request")
	}
	if _, err := advisor.PivotAnalysis(context.Background(), &ai.AnalysisRequest{}); err == nil {
		t.Fatalf("expected an error for missing profile")
	}
}

func TestThreeStepPlanRendersTemplate(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "plan"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	if _, err := advisor.ThreeStepPlan(context.Background(), &ai.PlanRequest{
		Profile: testProfile(),
		Target:  testTarget(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := stub.prompts[0]
	for _, expected := range []string{"Alex", "UX Researcher", "evenings", "low"} {
		if !strings.Contains(prompt, expected) {
			t.Fatalf("expected prompt to contain %q\n%s", expected, prompt)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", prompt)
	}
}

func TestPlanRequestsRequireTarget(t *testing.T) {
	t.Parallel()

	advisor := NewAdvisor(&stubGenerator{}, zap.NewNop(), 0)
	req := &ai.PlanRequest{Profile: testProfile()}

	if _, err := advisor.ThreeStepPlan(context.Background(), req); err == nil {
		t.Fatalf("expected an error for missing target")
	}
	if _, err := advisor.Monetization(context.Background(), req); err == nil {
		t.Fatalf("expected an error for missing target")
	}
}

func TestResumeReframeUsesDefaultAccomplishments(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "reframed"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	if _, err := advisor.ResumeReframe(context.Background(), &ai.ReframeRequest{
		Profile: testProfile(),
		Target:  testTarget(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.prompts[0], defaultAccomplishments[0]) {
		t.Fatalf("expected default accomplishments in prompt:\n%s", stub.prompts[0])
	}
}

func TestResumeReframeUsesProvidedAccomplishments(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "reframed"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	if _, err := advisor.ResumeReframe(context.Background(), &ai.ReframeRequest{
		Profile:         testProfile(),
		Target:          testTarget(),
		Accomplishments: []string{"Shipped a big project"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := stub.prompts[0]
	if !strings.Contains(prompt, "- Shipped a big project") {
		t.Fatalf("expected provided accomplishments in prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, defaultAccomplishments[0]) {
		t.Fatalf("did not expect default accomplishments in prompt:\n%s", prompt)
	}
}

func TestMindsetCoachingBuildsSituation(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "coaching"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	if _, err := advisor.MindsetCoaching(context.Background(), &ai.CoachingRequest{
		Profile: testProfile(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := stub.prompts[0]
	// The situation line keeps only the first two pain points.
	if !strings.Contains(prompt, "They're in Customer Service Rep and hate angry customers, low pay") {
		t.Fatalf("unexpected situation rendering:\n%s", prompt)
	}
	if strings.Contains(prompt, "no growth") {
		t.Fatalf("expected pain points beyond the first two to be dropped:\n%s", prompt)
	}
	if !strings.Contains(prompt, defaultFears[0]) || !strings.Contains(prompt, defaultDreams[0]) {
		t.Fatalf("expected default fears and dreams in prompt:\n%s", prompt)
	}
}

func TestOutreachMessageDefaultsToNone(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "outreach"}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	if _, err := advisor.OutreachMessage(context.Background(), &ai.OutreachRequest{
		Profile: testProfile(),
		Target:  testTarget(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.prompts[0], "none") {
		t.Fatalf("expected empty motivation and goal to render as none:\n%s", stub.prompts[0])
	}
}

func TestGenerateErrorPropagates(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: errors.New("quota exceeded")}
	advisor := NewAdvisor(stub, zap.NewNop(), 0)

	_, err := advisor.PivotAnalysis(context.Background(), &ai.AnalysisRequest{Profile: testProfile()})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected generator error to propagate, got %v", err)
	}
}

func TestRenderPromptUnknownTemplate(t *testing.T) {
	t.Parallel()

	if _, err := renderPrompt("does_not_exist", nil); err == nil {
		t.Fatalf("expected an error for a missing template")
	}
}

func TestBulletList(t *testing.T) {
	t.Parallel()

	got := bulletList([]string{"one", "two"})
	if got != "- one\n- two" {
		t.Fatalf("unexpected bullet list: %q", got)
	}
}
