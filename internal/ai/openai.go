package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// Sampling settings carried over from the original deployment.
const (
	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

type openAIConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type openAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIChatMsg `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIChatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Generate(ctx context.Context, model string, system string, user string) (string, error) {
	if p.apiKey == "" {
		return "", ErrUnavailable
	}
	reqBody := openAIChatRequest{
		Model: model,
		Messages: []openAIChatMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}
	var out openAIChatResponse
	if err := p.post(ctx, "/chat/completions", reqBody, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (p *openAIProvider) Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error) {
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}
	reqBody := openAIEmbedRequest{
		Model: model,
		Input: text,
	}
	var out openAIEmbedResponse
	if err := p.post(ctx, "/embeddings", reqBody, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("openai response has no embeddings")
	}
	return out.Data[0].Embedding, nil
}

func (p *openAIProvider) post(ctx context.Context, path string, in interface{}, out interface{}) error {
	endpoint := strings.TrimRight(p.baseURL, "/") + path
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &openAIProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		client:  http.DefaultClient,
	}, nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
