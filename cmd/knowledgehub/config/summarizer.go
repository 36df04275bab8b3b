package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"

	"github.com/knowledgehub/knowledgehub/summarizer"
)

type summarizerConf struct {
	Provider string                  `yaml:"provider"`
	BaseURL  string                  `yaml:"base_url"`
	Model    string                  `yaml:"model"`
	APIKey   string                  `yaml:"api_key"`
	Timeout  duration.DurationOption `yaml:"timeout"`
}

func (c *summarizerConf) validate() error {
	switch c.Provider {
	case "", summarizer.ProviderMock:
	case summarizer.ProviderOpenAI:
		if c.APIKey == "" {
			return errors.New("error in summarizer conf: api_key must be specified for the openai provider")
		}
	default:
		return errors.Errorf("error in summarizer conf: unknown provider '%s'", c.Provider)
	}
	if c.Timeout.Duration() <= 0 {
		return errors.New("error in summarizer conf: timeout must be positive")
	}
	return nil
}

// SummarizerConfig returns the summarizer.Config for this configuration
func (c summarizerConf) SummarizerConfig() summarizer.Config {
	return summarizer.Config{
		Provider: c.Provider,
		OpenAI: summarizer.OpenAIConfig{
			BaseURL: c.BaseURL,
			Model:   c.Model,
			APIKey:  c.APIKey,
		},
	}
}

var defaultSummarizerConf = summarizerConf{
	Provider: summarizer.ProviderMock,
	Timeout:  duration.DurationOption(30 * time.Second),
}
