package analysis

import (
	"fmt"
	"strings"
)

// Recommendation is one improvement item in the final response. Category is
// normally one of the fixed set the prompt demands, but unknown values coming
// back from the model are kept as-is rather than rejected.
type Recommendation struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Problem    string `json:"problem"`
	Impact     string `json:"impact"`
	Suggestion string `json:"suggestion"`
	Category   string `json:"category"`
}

// Response is the uniform wire shape every analysis produces. When Success is
// false, Recommendations is empty and Error is populated; when true,
// OverallAssessment and UserContext are always non-empty.
type Response struct {
	Success           bool             `json:"success"`
	OverallAssessment string           `json:"overall_assessment"`
	UserContext       string           `json:"user_context"`
	Recommendations   []Recommendation `json:"recommendations"`
	ImageInfo         any              `json:"image_info,omitempty"`
	SourceURL         string           `json:"source_url,omitempty"`
	ScreenshotData    string           `json:"screenshot_data,omitempty"`
	AnalysisTimestamp float64          `json:"analysis_timestamp,omitempty"`
	Error             string           `json:"error,omitempty"`
}

const (
	defaultAssessment  = "Análise concluída"
	defaultUserContext = "Contexto não especificado"
	defaultCategory    = "Usabilidade"
)

// FormatResponse shapes a coerced analysis result into the response contract,
// defaulting missing fields and cleaning every recommendation.
func FormatResponse(result map[string]any) Response {
	resp := Response{
		Success:           true,
		OverallAssessment: stringField(result, "overall_assessment", defaultAssessment),
		UserContext:       stringField(result, "user_context", defaultUserContext),
		Recommendations:   cleanRecommendations(result["recommendations"]),
	}

	if info, ok := result["image_info"]; ok {
		resp.ImageInfo = info
	}
	if u, ok := result["source_url"].(string); ok {
		resp.SourceURL = u
	}
	if s, ok := result["screenshot_data"].(string); ok {
		resp.ScreenshotData = s
	}

	return resp
}

// ErrorResponse builds the failure shape: no recommendations, error message
// populated.
func ErrorResponse(errorMessage string) Response {
	return Response{
		Success:           false,
		OverallAssessment: "Erro na análise",
		UserContext:       "Erro na análise",
		Recommendations:   []Recommendation{},
		Error:             errorMessage,
	}
}

func stringField(result map[string]any, key, fallback string) string {
	if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// cleanRecommendations string-coerces every field of every recommendation,
// dropping entries that are not objects at all.
func cleanRecommendations(raw any) []Recommendation {
	items, ok := raw.([]any)
	if !ok {
		return []Recommendation{}
	}

	cleaned := make([]Recommendation, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := Recommendation{
			ID:         asString(fields["id"]),
			Title:      asString(fields["title"]),
			Problem:    asString(fields["problem"]),
			Impact:     asString(fields["impact"]),
			Suggestion: asString(fields["suggestion"]),
			Category:   asString(fields["category"]),
		}
		if rec.Category == "" {
			rec.Category = defaultCategory
		}
		cleaned = append(cleaned, rec)
	}
	return cleaned
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
