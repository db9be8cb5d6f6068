package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type openAIGenerator struct {
	apiKey string
	client *http.Client
}

func newOpenAIGenerator(apiKey string, client *http.Client) *openAIGenerator {
	return &openAIGenerator{apiKey: apiKey, client: client}
}

func (g *openAIGenerator) Name() string { return "openai" }

func (g *openAIGenerator) Generate(ctx context.Context, question, language string, data map[string]any) (string, error) {
	payload := map[string]any{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt(language, data)},
			{"role": "user", "content": question},
		},
		"max_tokens":  500,
		"temperature": 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, raw)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func systemPrompt(language string, data map[string]any) string {
	prompt := "You are an agricultural assistant for Indian farmers. " +
		"Answer briefly and practically, in simple words a farmer can act on."
	if language == "hi" {
		prompt += " Respond in Hindi."
	}
	if data != nil {
		extra, err := json.Marshal(data)
		if err == nil {
			prompt += " Use this current data when relevant: " + string(extra)
		}
	}
	return prompt
}
