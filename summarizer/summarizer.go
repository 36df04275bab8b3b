// Package summarizer provides text summarization backends.
package summarizer

import (
	"context"

	"github.com/pkg/errors"
)

// Provider names
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
)

// ErrUnavailable is returned (wrapped) when a live provider could not produce
// a summary
var ErrUnavailable = errors.New("summarization unavailable")

// Summarizer generates a summary for article content
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// Config selects and configures a summarization provider
type Config struct {
	Provider string       `yaml:"provider"`
	OpenAI   OpenAIConfig `yaml:"openai"`
}

// New returns the Summarizer for the configured provider. An empty provider
// selects the mock.
func New(conf Config) (Summarizer, error) {
	switch conf.Provider {
	case "", ProviderMock:
		return Mock{}, nil
	case ProviderOpenAI:
		return NewOpenAI(conf.OpenAI)
	default:
		return nil, errors.Errorf("unsupported summarizer provider '%s'", conf.Provider)
	}
}
