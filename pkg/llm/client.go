package llm

import (
	"fmt"
	"os"
)

// ItemInput carries one segmented decision item to the model.
type ItemInput struct {
	ItemID  string
	Heading string
	Body    string
}

// RawMotion is the untrusted per-item payload exactly as the model returned
// it. Field-level defenses (fallbacks, normalization) belong to the caller.
type RawMotion struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	Category   string `json:"category"`
	ImpactTags any    `json:"impact_tags"`
	FullText   string `json:"full_text"`
}

// MotionClient issues one model call for one item and returns the parsed
// payload list: empty for procedural items, one entry for a substantive
// decision. A malformed response is an error; callers degrade to no motion.
type MotionClient interface {
	ExtractMotions(input ItemInput) ([]RawMotion, error)
}

// FromEnv picks the extraction client from LLM_PROVIDER (default openai).
func FromEnv() (MotionClient, error) {
	switch provider := os.Getenv("LLM_PROVIDER"); provider {
	case "", "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return NewOpenAIClient(key), nil
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropicClient(key), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER: %q", provider)
	}
}
