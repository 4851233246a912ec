package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

const (
	defaultBaseURL = "https://api.openai.com"

	fallbackSystemPrompt = "You write concise, accurate, SEO-friendly product descriptions. " +
		"Avoid hallucinations, avoid brand claims, avoid HTML. Keep to the requested language and tone."
)

// GenerateOptions tune a single description request.
type GenerateOptions struct {
	AgentID   string
	Tone      string
	Language  string
	Keywords  []string
	MaxLength int
}

// Generator produces product descriptions.
type Generator interface {
	GenerateDescription(ctx context.Context, product model.Product, opts GenerateOptions, cfg *Config) (string, error)
}

// HTTPGenerator implements Generator via the OpenAI chat completions API.
// Without a usable config it falls back to a deterministic description so the
// admin console keeps working offline.
type HTTPGenerator struct {
	rest   *resty.Client
	logger *slog.Logger
}

// Option customizes the generator.
type Option func(*HTTPGenerator)

// WithBaseURL overrides the provider endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(g *HTTPGenerator) {
		g.rest.SetBaseURL(baseURL)
	}
}

// NewHTTPGenerator creates the generator with default timeout.
func NewHTTPGenerator(logger *slog.Logger, opts ...Option) *HTTPGenerator {
	g := &HTTPGenerator{
		rest: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second),
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateDescription builds a fact-sheet prompt for the product and asks the
// configured provider for a description.
func (g *HTTPGenerator) GenerateDescription(ctx context.Context, product model.Product, opts GenerateOptions, cfg *Config) (string, error) {
	tone := opts.Tone
	language := opts.Language
	maxLength := opts.MaxLength
	if cfg != nil {
		if tone == "" {
			tone = cfg.Defaults.Tone
		}
		if language == "" {
			language = cfg.Defaults.Language
		}
		if maxLength == 0 {
			maxLength = cfg.Defaults.MaxLength
		}
	}
	if tone == "" {
		tone = "neutral"
	}
	if language == "" {
		language = "en"
	}
	if maxLength == 0 {
		maxLength = 150
	}

	if cfg == nil || cfg.APIKey == "" {
		base := product.Name
		if product.Category != "" {
			base += fmt.Sprintf(" (%s)", product.Category)
		}
		base += fmt.Sprintf(", a thoughtfully crafted item described in a %s tone.", tone)
		return ClampLength(base, maxLength*8), nil
	}

	if cfg.Provider != ProviderOpenAI {
		return "", fmt.Errorf("provider %s not supported yet", cfg.Provider)
	}

	agent := cfg.Agent(opts.AgentID)
	systemPrompt := fallbackSystemPrompt
	temperature := 0.7
	maxTokens := 512
	if agent != nil {
		systemPrompt = agent.SystemPrompt
		if agent.Temperature != nil {
			temperature = *agent.Temperature
		}
		if agent.MaxTokens != nil {
			maxTokens = *agent.MaxTokens
		}
	}

	body := map[string]any{
		"model": cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildUserPrompt(product, language, tone, maxLength, opts.Keywords)},
		},
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}

	var completion chatResponse
	resp, err := g.rest.R().
		SetContext(ctx).
		SetAuthToken(cfg.APIKey).
		SetBody(body).
		SetResult(&completion).
		Post("/v1/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		g.logger.Error("ai provider request failed", slog.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("ai provider error: %s", resp.Status())
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return ClampLength(completion.Choices[0].Message.Content, maxLength*8), nil
}

func buildUserPrompt(product model.Product, language, tone string, maxLength int, keywords []string) string {
	lines := []string{
		fmt.Sprintf("Language: %s", language),
		fmt.Sprintf("Tone: %s", tone),
		fmt.Sprintf("Target length: ~%d words", maxLength),
		fmt.Sprintf("Name: %s", product.Name),
	}
	if product.Category != "" {
		lines = append(lines, fmt.Sprintf("Category: %s", product.Category))
	}
	if product.IsBundle {
		lines = append(lines, "Type: Bundle")
	}
	if product.MetalType != "" {
		lines = append(lines, fmt.Sprintf("Metal: %s", product.MetalType))
	}
	if product.Gemstone != "" {
		lines = append(lines, fmt.Sprintf("Gemstone: %s", product.Gemstone))
	}
	if product.Weight > 0 {
		lines = append(lines, fmt.Sprintf("Weight: %g", product.Weight))
	}
	if product.SKU != "" {
		lines = append(lines, fmt.Sprintf("SKU: %s", product.SKU))
	}
	if product.Price > 0 {
		lines = append(lines, fmt.Sprintf("Price: %g", product.Price))
	}
	if product.MinPrice != nil {
		lines = append(lines, fmt.Sprintf("Min Price: %g", *product.MinPrice))
	}
	if product.StockQuantity > 0 {
		lines = append(lines, fmt.Sprintf("Stock: %d", product.StockQuantity))
	}
	if len(product.Images) > 0 {
		lines = append(lines, fmt.Sprintf("Images: %d", len(product.Images)))
	}
	if len(keywords) > 0 {
		lines = append(lines, fmt.Sprintf("Keywords: %s", strings.Join(keywords, ", ")))
	}
	return strings.Join(lines, "\n")
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	tailWordRe   = regexp.MustCompile(`\s+\S*$`)
)

// ClampLength strips markup, collapses whitespace and cuts the text at a word
// boundary within limit characters.
func ClampLength(text string, limit int) string {
	cleaned := strings.TrimSpace(htmlTagRe.ReplaceAllString(whitespaceRe.ReplaceAllString(text, " "), ""))
	if len(cleaned) <= limit {
		return cleaned
	}
	return tailWordRe.ReplaceAllString(cleaned[:limit], "")
}
