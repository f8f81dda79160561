package openaiadapter

import (
	"context"
	"errors"
	"strings"

	"launchpad/contexts/community-experience/chat-relay-service/ports"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultModel = openai.ChatModelGPT4oMini

// Completer implements ports.ChatCompleter over the OpenAI chat completions
// API.
type Completer struct {
	client openai.Client
	model  openai.ChatModel
}

func NewCompleter(apiKey string, model string) *Completer {
	resolved := openai.ChatModel(strings.TrimSpace(model))
	if resolved == "" {
		resolved = defaultModel
	}
	return &Completer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  resolved,
	}
}

func (c *Completer) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, turn := range req.History {
		switch turn.Role {
		case ports.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(req.UserMessage))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
