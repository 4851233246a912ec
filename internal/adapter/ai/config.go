package ai

import (
	"fmt"
	"strings"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
)

// Provider names accepted in the AI integration config.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

// Tone values accepted for generated descriptions.
var validTones = map[string]bool{
	"neutral":   true,
	"friendly":  true,
	"luxury":    true,
	"technical": true,
}

// Agent is a named system-prompt preset.
type Agent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SystemPrompt string   `json:"systemPrompt"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"maxTokens,omitempty"`
	Language     string   `json:"language,omitempty"`
}

// Defaults are applied when a generation request leaves options unset.
type Defaults struct {
	Tone      string `json:"tone,omitempty"`
	Language  string `json:"language,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
}

// Config is the validated AI integration configuration.
type Config struct {
	Provider string   `json:"provider"`
	APIKey   string   `json:"apiKey"`
	Model    string   `json:"model"`
	Defaults Defaults `json:"defaults,omitempty"`
	Agents   []Agent  `json:"agents,omitempty"`
}

// Agent finds the agent with the given id, or nil.
func (c *Config) Agent(id string) *Agent {
	if id == "" {
		return nil
	}
	for i := range c.Agents {
		if c.Agents[i].ID == id {
			return &c.Agents[i]
		}
	}
	return nil
}

// Validate checks the config and fills defaults. Every problem is reported,
// not just the first.
func (c *Config) Validate() error {
	var problems []string

	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGroq:
	default:
		problems = append(problems, "provider must be one of: openai, anthropic, groq")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		problems = append(problems, "apiKey is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		problems = append(problems, "model is required")
	}

	if c.Defaults.Tone != "" && !validTones[c.Defaults.Tone] {
		problems = append(problems, "defaults.tone invalid")
	}
	if c.Defaults.MaxLength < 0 {
		problems = append(problems, "defaults.maxLength must be positive")
	}

	for i, agent := range c.Agents {
		if agent.ID == "" {
			problems = append(problems, fmt.Sprintf("agents[%d].id is required", i))
		}
		if agent.Name == "" {
			problems = append(problems, fmt.Sprintf("agents[%d].name is required", i))
		}
		if agent.SystemPrompt == "" {
			problems = append(problems, fmt.Sprintf("agents[%d].systemPrompt is required", i))
		}
		if agent.Temperature != nil && (*agent.Temperature < 0 || *agent.Temperature > 2) {
			problems = append(problems, fmt.Sprintf("agents[%d].temperature must be in [0,2]", i))
		}
		if agent.MaxTokens != nil && *agent.MaxTokens <= 0 {
			problems = append(problems, fmt.Sprintf("agents[%d].maxTokens must be positive", i))
		}
	}

	if len(problems) > 0 {
		return domainErrors.NewValidationError(problems...)
	}

	if c.Defaults.Tone == "" {
		c.Defaults.Tone = "neutral"
	}
	if c.Defaults.Language == "" {
		c.Defaults.Language = "en"
	}
	if c.Defaults.MaxLength == 0 {
		c.Defaults.MaxLength = 150
	}

	return nil
}
