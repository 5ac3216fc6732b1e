// Package llm wraps the OpenAI HTTP APIs consumed by the chat services:
// chat completions for generating assistant replies and the assistants
// endpoint for provisioning provider-side thread ids.
package llm

import (
	"context"
	"fmt"
	"log"

	"docgpt-backend/internal/models"

	"github.com/go-resty/resty/v2"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	completionTemperature = 0.5
	completionTopP        = 1.0
)

// OpenAIClient talks to the OpenAI API. Completions go through the official
// SDK; thread provisioning goes through a plain REST call because the
// assistants endpoint needs the beta opt-in header.
type OpenAIClient struct {
	client openai.Client
	rest   *resty.Client
	apiKey string
	model  string
}

// NewOpenAIClient creates a client bound to one API key and model id.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		rest:   resty.New().SetBaseURL("https://api.openai.com"),
		apiKey: apiKey,
		model:  model,
	}
}

// CreateChatCompletion sends the assembled message list to the chat
// completion endpoint and returns the assistant's reply content.
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, messages []models.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(completionTemperature),
		TopP:        openai.Float(completionTopP),
	}

	res, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("ERROR [OpenAIClient] chat completion failed: %v", err)
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}

type assistantCreateResponse struct {
	ID string `json:"id"`
}

// CreateAssistantThread provisions a new provider-side conversation and
// returns its id. The provider object created is an assistant; its id
// doubles as the thread id everywhere downstream.
func (c *OpenAIClient) CreateAssistantThread(ctx context.Context) (string, error) {
	var out assistantCreateResponse
	res, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("OpenAI-Beta", "assistants=v2").
		SetBody(map[string]string{"model": c.model}).
		SetResult(&out).
		Post("/v1/assistants")
	if err != nil {
		log.Printf("ERROR [OpenAIClient] assistant creation request failed: %v", err)
		return "", fmt.Errorf("openai assistant creation failed: %w", err)
	}
	if res.IsError() {
		log.Printf("ERROR [OpenAIClient] assistant creation returned status %d: %s", res.StatusCode(), res.String())
		return "", fmt.Errorf("openai assistant creation failed with status %d", res.StatusCode())
	}
	if out.ID == "" {
		return "", fmt.Errorf("openai assistant creation returned no id")
	}

	return out.ID, nil
}

// toOpenAIMessages maps stored messages onto the SDK's union params.
func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
