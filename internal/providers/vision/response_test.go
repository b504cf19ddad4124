package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceExtractsEmbeddedJSON(t *testing.T) {
	raw := "Here is my analysis:\n```json\n" +
		`{"overall_assessment": "boa", "user_context": "painel", "recommendations": [{"id": "1", "title": "Contraste", "problem": "p", "impact": "i", "suggestion": "s", "category": "Visual"}]}` +
		"\n```\nHope it helps!"

	result := Coerce(raw)

	assert.Equal(t, "boa", result["overall_assessment"])
	assert.Equal(t, "painel", result["user_context"])
	recs, ok := result["recommendations"].([]any)
	require.True(t, ok)
	require.Len(t, recs, 1)
	rec := recs[0].(map[string]any)
	assert.Equal(t, "Contraste", rec["title"])
	assert.Equal(t, "Visual", rec["category"])
}

func TestCoerceFallsBackOnProse(t *testing.T) {
	result := Coerce("The interface looks decent but the buttons are small.")

	assert.NotEmpty(t, result["overall_assessment"])
	recs, ok := result["recommendations"].([]any)
	require.True(t, ok)
	assert.Len(t, recs, 1)
}

func TestCoerceFallsBackOnMalformedJSON(t *testing.T) {
	result := Coerce(`prefix {"overall_assessment": "boa",} suffix`)

	assert.Equal(t, "Análise realizada com sucesso", result["overall_assessment"])
}

func TestCoerceGreedyMatchSpansOutermostBraces(t *testing.T) {
	// Two separate objects: the greedy scan grabs from the first "{" to the
	// last "}", which is not valid JSON, so the fallback applies. This is the
	// documented fragility of the extraction, preserved on purpose.
	result := Coerce(`{"a": 1} and then {"b": 2}`)

	assert.Equal(t, "Análise realizada com sucesso", result["overall_assessment"])
}

func TestCoerceEmptyUpstreamYieldsErrorShape(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		result := Coerce(raw)

		assert.Equal(t, "Erro na análise", result["overall_assessment"])
		recs, ok := result["recommendations"].([]any)
		require.True(t, ok)
		require.Len(t, recs, 1)
		rec := recs[0].(map[string]any)
		assert.Equal(t, "Erro", rec["category"])
	}
}

func TestErrorResultCarriesMessage(t *testing.T) {
	result := ErrorResult("conexão recusada")

	recs := result["recommendations"].([]any)
	rec := recs[0].(map[string]any)
	assert.Contains(t, rec["problem"], "conexão recusada")
	assert.Equal(t, "error", rec["id"])
}
