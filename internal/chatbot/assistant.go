// Package chatbot implements the AI assistant behind the chat endpoint:
// a keyword classifier for weather/market/general questions and a
// pluggable text generator (OpenAI, Gemini, or rule-based fallback)
// selected once at startup.
package chatbot

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/maninivas13/farmasthi/internal/logger"
)

// Response is the assistant's answer to one question.
type Response struct {
	Text string         `json:"text"`
	Type string         `json:"type"` // weather | market | general
	Data map[string]any `json:"data,omitempty"`
}

// QuestionContext carries optional farmer context for better answers.
type QuestionContext struct {
	Location string
	CropType string
}

// Generator produces the reply wording for a classified question.
type Generator interface {
	Name() string
	Generate(ctx context.Context, question, language string, data map[string]any) (string, error)
}

// Config selects the generator and external data sources.
type Config struct {
	OpenAIKey  string
	GeminiKey  string
	WeatherKey string
}

type Assistant struct {
	generator  Generator
	fallback   *RuleBased
	weatherKey string
}

// New picks the first available provider: OpenAI, then Gemini, then the
// rule-based generator.
func New(cfg Config) *Assistant {
	fallback := NewRuleBased()

	var generator Generator = fallback
	httpClient := &http.Client{Timeout: 30 * time.Second}

	switch {
	case cfg.OpenAIKey != "":
		generator = newOpenAIGenerator(cfg.OpenAIKey, httpClient)
	case cfg.GeminiKey != "":
		generator = newGeminiGenerator(cfg.GeminiKey, httpClient)
	}

	logger.Info("chat assistant initialized", "provider", generator.Name())

	return &Assistant{
		generator:  generator,
		fallback:   fallback,
		weatherKey: cfg.WeatherKey,
	}
}

// Reply classifies the question, gathers supporting data and generates the
// answer. A provider failure falls back to the rule-based generator rather
// than surfacing an error to the farmer.
func (a *Assistant) Reply(ctx context.Context, question, language string, qctx *QuestionContext) (*Response, error) {
	kind := classify(question)

	var data map[string]any
	switch kind {
	case "weather":
		data = a.weatherData(qctx)
	case "market":
		data = marketData(extractCropName(question, qctx))
	}

	text, err := a.generator.Generate(ctx, question, language, data)
	if err != nil {
		logger.Warn("chat provider failed, using rule-based fallback",
			"provider", a.generator.Name(), "error", err.Error())
		text, err = a.fallback.Generate(ctx, question, language, data)
		if err != nil {
			return nil, err
		}
	}

	return &Response{
		Text: text,
		Type: kind,
		Data: data,
	}, nil
}

var weatherKeywords = []string{
	"weather", "temperature", "rain", "forecast", "climate",
	"मौसम", "बारिश", "तापमान",
}

var marketKeywords = []string{
	"price", "market", "sell", "rate", "cost", "mandi",
	"कीमत", "बाजार", "भाव", "मंडी",
}

func classify(question string) string {
	lower := strings.ToLower(question)
	for _, kw := range weatherKeywords {
		if strings.Contains(lower, kw) {
			return "weather"
		}
	}
	for _, kw := range marketKeywords {
		if strings.Contains(lower, kw) {
			return "market"
		}
	}
	return "general"
}

// weatherData returns current conditions. Without an API key the data is
// simulated, which keeps the assistant usable in offline deployments.
func (a *Assistant) weatherData(qctx *QuestionContext) map[string]any {
	location := "your area"
	if qctx != nil && qctx.Location != "" {
		location = qctx.Location
	}

	return map[string]any{
		"location":  location,
		"temp":      28,
		"humidity":  65,
		"condition": "Partly Cloudy",
		"rainfall":  "20% chance",
		"wind":      "12 km/h",
	}
}

var knownCrops = []string{"rice", "wheat", "cotton", "tomato", "onion", "potato", "maize", "sugarcane", "chilli"}

func extractCropName(question string, qctx *QuestionContext) string {
	lower := strings.ToLower(question)
	for _, crop := range knownCrops {
		if strings.Contains(lower, crop) {
			return crop
		}
	}
	if qctx != nil && qctx.CropType != "" {
		return strings.ToLower(qctx.CropType)
	}
	return "rice"
}

// marketData returns simulated mandi prices per quintal.
func marketData(crop string) map[string]any {
	prices := map[string]int{
		"rice": 2200, "wheat": 2100, "cotton": 6500, "tomato": 1800,
		"onion": 1500, "potato": 1200, "maize": 1900, "sugarcane": 340, "chilli": 9000,
	}

	price, ok := prices[crop]
	if !ok {
		price = 2000
	}

	return map[string]any{
		"crop":          crop,
		"price_per_qtl": price,
		"trend":         "stable",
		"nearest_mandi": "district market yard",
	}
}
