package llm

import (
	"fmt"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/common"
)

// NewClient creates an LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	case "together":
		// Together exposes an OpenAI-compatible chat completions API.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://api.together.xyz/v1"
		}
		if cfg.Model == "" {
			cfg.Model = "mistralai/Mixtral-8x7B-Instruct-v0.1"
		}
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
