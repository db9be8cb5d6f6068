package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		question string
		want     string
	}{
		{"Will it rain tomorrow?", "weather"},
		{"What is the temperature today", "weather"},
		{"आज मौसम कैसा है", "weather"},
		{"What is the price of cotton in the mandi", "market"},
		{"Where should I sell my onions", "market"},
		{"कपास की कीमत क्या है", "market"},
		{"How do I treat leaf curl disease", "general"},
		{"hello", "general"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, classify(tc.question), "question: %s", tc.question)
	}
}

func TestExtractCropName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cotton", extractCropName("price of cotton today", nil))
	assert.Equal(t, "wheat", extractCropName("market rate", &QuestionContext{CropType: "Wheat"}))
	assert.Equal(t, "rice", extractCropName("market rate", nil))
}

func TestAssistant_RuleBasedReplies(t *testing.T) {
	t.Parallel()

	// No provider keys configured: the rule-based generator answers.
	assistant := New(Config{})

	weather, err := assistant.Reply(context.Background(), "Will it rain this week?", "en", &QuestionContext{Location: "Warangal"})
	require.NoError(t, err)
	assert.Equal(t, "weather", weather.Type)
	assert.Contains(t, weather.Text, "Warangal")
	assert.Equal(t, "Warangal", weather.Data["location"])

	market, err := assistant.Reply(context.Background(), "What is the mandi price of cotton?", "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "market", market.Type)
	assert.Equal(t, "cotton", market.Data["crop"])
	assert.Contains(t, market.Text, "cotton")

	general, err := assistant.Reply(context.Background(), "How much fertilizer for my field?", "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "general", general.Type)
	assert.Nil(t, general.Data)
	assert.NotEmpty(t, general.Text)
}

func TestAssistant_HindiAnswers(t *testing.T) {
	t.Parallel()

	assistant := New(Config{})

	resp, err := assistant.Reply(context.Background(), "What is the price of rice?", "hi", nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "₹")
}

func TestRuleBased_GeneralTopics(t *testing.T) {
	t.Parallel()

	rules := NewRuleBased()

	answer, err := rules.Generate(context.Background(), "My field has a pest problem", "en", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "neem")

	fallback, err := rules.Generate(context.Background(), "tell me something", "en", nil)
	require.NoError(t, err)
	assert.Contains(t, fallback, "weather, market prices")
}
