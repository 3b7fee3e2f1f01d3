package advisor

import "github.com/yetria/yetria/internal/llm"

// Fit levels accepted in Insight.Fit.
const (
	FitStrong      = "strong"
	FitModerate    = "moderate"
	FitExploratory = "exploratory"
)

// InsightSchema defines the JSON schema for career insight generation.
// Length limits are applied after decoding since not every provider
// accepts them in structured output.
var InsightSchema = &llm.Schema{
	Name:        "career-insight",
	Description: "Narrative career guidance derived from a competency assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "3-4 sentence overview of how the results fit the best matching occupation",
			},
			"fit": map[string]any{
				"type":        "string",
				"enum":        []any{FitStrong, FitModerate, FitExploratory},
				"description": "How well the competency profile fits the best matching occupation",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "How to use each strong competency (one short sentence each)",
			},
			"growth_tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete practice ideas for the weakest competencies",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 actions the user can take this month",
			},
		},
		"required":             []any{"summary", "fit", "strengths", "growth_tips", "next_steps"},
		"additionalProperties": false,
	},
}
