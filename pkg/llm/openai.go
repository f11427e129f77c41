package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (c *OpenAIClient) ExtractMotions(input ItemInput) ([]RawMotion, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(extractionTemperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(motionSystemPrompt),
			openai.UserMessage(buildItemPrompt(input)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return parseMotionList(resp.Choices[0].Message.Content, input.ItemID)
}
