package chatbot

import (
	"context"
	"fmt"
	"strings"
)

// RuleBased is the zero-dependency generator used when no provider key is
// configured and as a fallback when a provider call fails.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

func (r *RuleBased) Name() string { return "rules" }

func (r *RuleBased) Generate(_ context.Context, question, language string, data map[string]any) (string, error) {
	switch {
	case data != nil && data["condition"] != nil:
		return weatherAnswer(language, data), nil
	case data != nil && data["crop"] != nil:
		return marketAnswer(language, data), nil
	default:
		return generalAnswer(question, language), nil
	}
}

func weatherAnswer(language string, data map[string]any) string {
	if language == "hi" {
		return fmt.Sprintf("%v में मौसम: %v, तापमान %v°C, आर्द्रता %v%%, बारिश की संभावना %v।",
			data["location"], data["condition"], data["temp"], data["humidity"], data["rainfall"])
	}
	return fmt.Sprintf("Weather in %v: %v, %v°C with %v%% humidity. Rainfall: %v. Wind: %v.",
		data["location"], data["condition"], data["temp"], data["humidity"], data["rainfall"], data["wind"])
}

func marketAnswer(language string, data map[string]any) string {
	if language == "hi" {
		return fmt.Sprintf("%v का वर्तमान भाव ₹%v प्रति क्विंटल है (%v)। निकटतम मंडी: %v।",
			data["crop"], data["price_per_qtl"], data["trend"], data["nearest_mandi"])
	}
	return fmt.Sprintf("Current market price for %v is ₹%v per quintal (trend: %v). Nearest mandi: %v.",
		data["crop"], data["price_per_qtl"], data["trend"], data["nearest_mandi"])
}

var generalAdvice = map[string]string{
	"pest":       "For pest problems, inspect leaves for visible insects or eggs, use neem-based sprays first, and submit a query with a photo so an agricultural officer can identify the pest.",
	"disease":    "Leaf spots, wilting or discoloration usually indicate fungal or bacterial disease. Remove affected parts, avoid overhead watering, and submit a query with a photo for diagnosis.",
	"fertilizer": "Apply fertilizer based on a soil test where possible. For most crops a balanced NPK at sowing followed by nitrogen top-dressing works well. An officer can give crop-specific doses.",
	"irrigation": "Water early morning or late evening to reduce evaporation. Most field crops need irrigation at critical growth stages rather than on a fixed schedule.",
	"seed":       "Use certified seeds from authorized dealers. Treat seeds before sowing to prevent soil-borne disease.",
}

func generalAnswer(question, language string) string {
	lower := strings.ToLower(question)
	for topic, advice := range generalAdvice {
		if strings.Contains(lower, topic) {
			return advice
		}
	}
	if language == "hi" {
		return "मैं मौसम, बाजार भाव और सामान्य खेती के सवालों में मदद कर सकता हूँ। विस्तृत सलाह के लिए कृषि अधिकारी को प्रश्न भेजें।"
	}
	return "I can help with weather, market prices and general farming questions. For detailed advice on your specific problem, submit a query and an agricultural officer will respond."
}
