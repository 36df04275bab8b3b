package summarizer

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/knowledgehub/knowledgehub/internal/version"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo"

	systemPrompt = "You are a helpful assistant that summarizes articles. Provide a concise, informative summary " +
		"that captures the main points and key insights of the article. Keep the summary clear and well-structured."
	userPromptPrefix = "Please summarize the following article:\n\n"

	maxSummaryTokens = 300
	temperature      = 0.7
)

// OpenAIConfig configures the OpenAI-compatible chat completions backend
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
}

// OpenAI summarizes content with an OpenAI-compatible chat completions API
type OpenAI struct {
	client *resty.Client
	model  string
}

// NewOpenAI creates a new OpenAI summarizer
func NewOpenAI(conf OpenAIConfig) (*OpenAI, error) {
	if conf.APIKey == "" {
		return nil, errors.New("openai summarizer requires an api key")
	}
	if conf.BaseURL == "" {
		conf.BaseURL = defaultOpenAIBaseURL
	}
	if conf.Model == "" {
		conf.Model = defaultOpenAIModel
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(conf.BaseURL, "/")).
		SetAuthToken(conf.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", version.UserAgent())
	return &OpenAI{
		client: client,
		model:  conf.Model,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Summarize implements the Summarizer interface
func (o *OpenAI) Summarize(ctx context.Context, content string) (string, error) {
	var res chatResponse
	var apiErr apiError
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(
			chatRequest{
				Model: o.model,
				Messages: []chatMessage{
					{
						Role:    "system",
						Content: systemPrompt,
					},
					{
						Role:    "user",
						Content: userPromptPrefix + content,
					},
				},
				MaxTokens:   maxSummaryTokens,
				Temperature: temperature,
			},
		).
		SetResult(&res).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", errors.Wrapf(ErrUnavailable, "openai request failed: %s", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return "", errors.Wrapf(ErrUnavailable, "openai returned %s: %s", resp.Status(), msg)
	}
	if len(res.Choices) == 0 {
		return "", errors.Wrap(ErrUnavailable, "openai returned no choices")
	}
	summary := strings.TrimSpace(res.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.Wrap(ErrUnavailable, "openai returned an empty summary")
	}
	return summary, nil
}
