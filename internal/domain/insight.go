package domain

// InsightType classifies an insight message.
type InsightType string

const (
	InsightAlert      InsightType = "alert"
	InsightSuccess    InsightType = "success"
	InsightPrediction InsightType = "prediction"
)

// Insight is one human-readable statement about spending behaviour.
// Category is "general" when the insight is not tied to a single category.
type Insight struct {
	Type     InsightType `json:"type"`
	Message  string      `json:"message"`
	Category string      `json:"category"`
}

// CategorySuggestion is the ephemeral result of categorizing a description.
// Confidence is 0.9 for an AI-validated label, 0.3-0.7 for the keyword
// fallback and 0.1 when categorization failed entirely.
type CategorySuggestion struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}
