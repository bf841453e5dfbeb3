// File: internal/devserver/reply/openai.go
package reply

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nexsuite/chatorb/internal/domain"
)

// OpenAIProvider answers through an OpenAI-compatible chat completion
// endpoint, replaying the stored conversation history as prior turns.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("AI API key is required")
	}
	if model == "" {
		return nil, errors.New("AI model is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) GenerateReply(ctx context.Context, message string, history []domain.Message, msgCtx domain.MessageContext) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: p.systemPrompt(msgCtx),
	})

	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) systemPrompt(msgCtx domain.MessageContext) string {
	prompt := "You are the in-app assistant of a business management platform. Answer concisely in markdown."
	if msgCtx.Page != "" {
		prompt += fmt.Sprintf(" The user is currently on the %q page.", msgCtx.Page)
	}
	if len(msgCtx.RecentEvents) > 0 {
		prompt += " Their recent platform activity:"
		for _, ev := range msgCtx.RecentEvents {
			prompt += fmt.Sprintf(" %s.", ev)
		}
	}
	return prompt
}
