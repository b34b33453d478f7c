package ai

import (
	"context"

	"github.com/spigell/pivot-navigator/internal/catalog"
	"github.com/spigell/pivot-navigator/internal/profile"
)

// AnalysisRequest carries everything the advisor needs for the top-level
// pivot analysis. Matches come from the deterministic engine and enrich the
// prompt context.
type AnalysisRequest struct {
	Profile *profile.Profile
	Matches []*catalog.CareerRecord
}

// PlanRequest targets one chosen career.
type PlanRequest struct {
	Profile *profile.Profile
	Target  *catalog.CareerRecord
}

// ReframeRequest asks for resume bullets rewritten for the target industry.
// When Accomplishments is empty the advisor substitutes generic examples.
type ReframeRequest struct {
	Profile         *profile.Profile
	Target          *catalog.CareerRecord
	Accomplishments []string
}

// CoachingRequest asks for motivational coaching. Fears and Dreams are
// optional; the advisor falls back to common defaults.
type CoachingRequest struct {
	Profile *profile.Profile
	Fears   []string
	Dreams  []string
}

// OutreachRequest asks for a short networking message toward someone already
// in the target role.
type OutreachRequest struct {
	Profile    *profile.Profile
	Target     *catalog.CareerRecord
	Motivation string
	Goal       string
}

// Advisor generates career-pivot guidance. Implementations wrap an external
// text-generation model; the returned text is opaque to the core and rendered
// to the user or exported as-is.
type Advisor interface {
	PivotAnalysis(ctx context.Context, req *AnalysisRequest) (string, error)
	ThreeStepPlan(ctx context.Context, req *PlanRequest) (string, error)
	Monetization(ctx context.Context, req *PlanRequest) (string, error)
	ResumeReframe(ctx context.Context, req *ReframeRequest) (string, error)
	MindsetCoaching(ctx context.Context, req *CoachingRequest) (string, error)
	OutreachMessage(ctx context.Context, req *OutreachRequest) (string, error)
}
