package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ProviderOpenAI is the registry name of the OpenAI-compatible backend.
const ProviderOpenAI = "openai"

// OpenAIConfig configures the OpenAI-compatible backend.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string // empty means the public OpenAI endpoint
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	MaxWordLength int
}

// OpenAIGenerator generates text through a chat completions endpoint.
type OpenAIGenerator struct {
	client openai.Client
	model  string
	maxLen int
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAI creates an OpenAIGenerator.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("openai model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(max(0, cfg.MaxRetries)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		maxLen: cfg.MaxWordLength,
	}, nil
}

// Name returns the provider name.
func (g *OpenAIGenerator) Name() string { return ProviderOpenAI }

// GenerateWord asks the model for a word. The answer is reduced to its first
// run of letters; validation is left to the caller.
func (g *OpenAIGenerator) GenerateWord(ctx context.Context) (string, error) {
	prompt, err := render(promptWord, wordPrompt{MaxLength: g.maxLen})
	if err != nil {
		return "", err
	}
	text, err := g.complete(ctx, prompt, 1.0)
	if err != nil {
		return "", err
	}
	return firstWord(text), nil
}

// GenerateHintText asks the model for a hint of the given type.
func (g *OpenAIGenerator) GenerateHintText(ctx context.Context, word, hintTypeCode string) (string, error) {
	prompt, err := render(promptHint, hintPrompt{Word: word, HintType: hintTypeCode})
	if err != nil {
		return "", err
	}
	return g.complete(ctx, prompt, 0.7)
}

// GenerateGuessReply asks the model for a reply to a scored guess.
func (g *OpenAIGenerator) GenerateGuessReply(ctx context.Context, in ReplyInput) (string, error) {
	prompt, err := render(promptReply, in)
	if err != nil {
		return "", err
	}
	return g.complete(ctx, prompt, 0.9)
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	system, err := render(promptSystem, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	text := cleanResponse(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// cleanResponse strips code fences, wrapping quotes and surrounding space.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\"'`“”‘’"))
}

// firstWord returns the first run of letters in s.
func firstWord(s string) string {
	start := strings.IndexFunc(s, unicode.IsLetter)
	if start < 0 {
		return ""
	}
	rest := s[start:]
	if end := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) }); end >= 0 {
		return rest[:end]
	}
	return rest
}
