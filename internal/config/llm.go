package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/finloom/cashflow-copilot/internal/llm"
)

// LoadLLMConfig builds the LLM client configuration from Viper and environment
// variables. The API key is looked up per provider, viper first.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "together"
	}

	config := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	switch provider {
	case "openai":
		config.APIKey = firstNonEmpty(viper.GetString("llm.openai_api_key"), os.Getenv("OPENAI_API_KEY"))
		if config.APIKey == "" {
			return llm.Config{}, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
	case "anthropic":
		config.APIKey = firstNonEmpty(viper.GetString("llm.anthropic_api_key"), os.Getenv("ANTHROPIC_API_KEY"))
		if config.APIKey == "" {
			return llm.Config{}, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
	case "together":
		config.APIKey = firstNonEmpty(viper.GetString("llm.together_api_key"), os.Getenv("TOGETHER_API_KEY"))
		if config.APIKey == "" {
			return llm.Config{}, fmt.Errorf("together API key not found in config or TOGETHER_API_KEY environment variable")
		}
	default:
		return llm.Config{}, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	return config, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
