package token_counter

type TokenCounterInterface interface {
	CountTextTokens(text string) int
	CountTextsTokens(texts []string) int
	CountPromptTokens(systemPrompt string, userPrompt string) int
}
