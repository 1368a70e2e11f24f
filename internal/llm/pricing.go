package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// Model families, matched by longest prefix so dated snapshots such as
// "claude-haiku-4-5-20251001" price like their family.
var modelCosts = map[string]ModelCost{
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-5":   {5, 25},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

// LookupCost returns pricing for a model ID. OpenRouter IDs carry a
// vendor prefix ("openai/gpt-4o-mini"), which is ignored.
func LookupCost(modelID string) (ModelCost, bool) {
	if i := strings.LastIndex(modelID, "/"); i >= 0 {
		modelID = modelID[i+1:]
	}
	best := ""
	for family := range modelCosts {
		if strings.HasPrefix(modelID, family) && len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return ModelCost{}, false
	}
	return modelCosts[best], true
}
