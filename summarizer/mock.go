package summarizer

import (
	"context"
	"fmt"
	"unicode/utf16"
)

const mockTemplate = "This is a mock summary of the article. The content contains approximately %d characters " +
	"and would be processed by an AI model to generate a meaningful summary."

// Mock is a deterministic Summarizer that only depends on the content length
type Mock struct{}

// Summarize implements the Summarizer interface. The reported length counts
// UTF-16 code units, so characters outside the BMP count twice.
func (Mock) Summarize(_ context.Context, content string) (string, error) {
	return fmt.Sprintf(mockTemplate, len(utf16.Encode([]rune(content)))), nil
}
