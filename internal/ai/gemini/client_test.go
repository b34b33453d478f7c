package gemini

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "   ", "", 0, zap.NewNop()); err == nil {
		t.Fatalf("expected an error for a blank api key")
	}
}

func TestFlattenResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   *genai.GenerateContentResponse
		expect string
	}{
		{
			name:   "nil response",
			resp:   nil,
			expect: "",
		},
		{
			name:   "no candidates",
			resp:   &genai.GenerateContentResponse{},
			expect: "",
		},
		{
			name: "single part",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: " hello "}}}},
				},
			},
			expect: "hello",
		},
		{
			name: "multiple parts joined with newlines",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{
						{Text: "first"},
						{Text: ""},
						{Text: "second"},
					}}},
				},
			},
			expect: "first\nsecond",
		},
		{
			name: "nil candidate and content skipped",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					nil,
					{Content: nil},
					{Content: &genai.Content{Parts: []*genai.Part{nil, {Text: "ok"}}}},
				},
			},
			expect: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := flattenResponse(tt.resp); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestGenerateContentOnNilGenerator(t *testing.T) {
	t.Parallel()

	var g *Generator
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error from an uninitialized generator")
	}
	if g.Model() != "" {
		t.Fatalf("expected empty model name from a nil generator")
	}
}
