package token_counter

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// messageOverhead is the per-message framing cost in OpenAI's token accounting
const messageOverhead = 4

// tokenCounterImpl estimates OpenAI token usage for translation prompts
type tokenCounterImpl struct {
	encoder *tiktoken.Tiktoken
}

var _ TokenCounterInterface = (*tokenCounterImpl)(nil)

var encodingBase = "cl100k_base"

// NewTokenCounter creates a new TokenCounter instance
func NewTokenCounter() (*tokenCounterImpl, error) {
	encoder, err := tiktoken.GetEncoding(encodingBase)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}

	return &tokenCounterImpl{
		encoder: encoder,
	}, nil
}

// CountTextTokens counts tokens in plain text
func (tc *tokenCounterImpl) CountTextTokens(text string) int {
	return len(tc.encoder.Encode(text, nil, nil))
}

// CountTextsTokens counts tokens across a batch of source texts
func (tc *tokenCounterImpl) CountTextsTokens(texts []string) int {
	total := 0
	for _, text := range texts {
		total += tc.CountTextTokens(text)
	}
	return total
}

// CountPromptTokens estimates a system + user chat exchange, including the
// per-message framing overhead.
func (tc *tokenCounterImpl) CountPromptTokens(systemPrompt string, userPrompt string) int {
	total := tc.CountTextTokens(systemPrompt) + messageOverhead
	total += tc.CountTextTokens(userPrompt) + messageOverhead
	return total
}
