package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiConfig struct {
	APIKey string `json:"api_key"`
}

type geminiProvider struct {
	apiKey string
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Generate(ctx context.Context, model string, system string, user string) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](completionTemperature),
		MaxOutputTokens: completionMaxTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	resp, err := client.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
		config,
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (p *geminiProvider) Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error) {
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	var config *genai.EmbedContentConfig
	if taskType != "" {
		config = &genai.EmbedContentConfig{TaskType: taskType}
	}
	resp, err := client.Models.EmbedContent(
		ctx,
		model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embedding values returned")
	}
	return resp.Embeddings[0].Values, nil
}

func createGeminiFactory(args interface{}) (IProvider, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return &geminiProvider{apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

func init() {
	Register("gemini", createGeminiFactory)
}
