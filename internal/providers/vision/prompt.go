package vision

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

// defaultProductContext stands in when the caller provides no context.
const defaultProductContext = "interface de usuário"

// promptTemplate is the instruction contract with the model. The JSON shape
// it demands must stay in lock-step with what Coerce expects to find.
var promptTemplate = dedent.Dedent(`
	Act as a Senior Product Designer with extensive experience in usability and interface design for %s.
	Your task is to provide a critical and constructive analysis of the provided screen. The goal is to identify strengths and weaknesses, always focusing on improving user experience and product efficiency.

	Please structure your analysis under the following topics:

	**User Context and Primary Objective:**
	Based on the interface, describe what you believe is the user's main objective on this screen and in what context they would be using it.

	**Improvement Opportunities (Detailed Critique):**
	Identify three areas that could be enhanced. For each, organize your critique strictly using the following format: Problem-Impact-Suggestion:

	**Problem:** Objectively describe the design or usability issue.

	**Impact:** Explain why this is a problem for the user (e.g., increases cognitive load, may lead to errors, disrupts visual hierarchy, lowers efficiency).

	**Suggestion:** Provide one or more concrete, actionable solutions to address the identified issue.

	**Formato de Resposta JSON:**
	Forneça sua análise no seguinte formato JSON:

	{
	    "overall_assessment": "Breve avaliação geral da interface",
	    "user_context": "Descrição do contexto do usuário e objetivo principal",
	    "recommendations": [
	        {
	            "id": "1",
	            "title": "Título da recomendação",
	            "problem": "Descrição objetiva do problema de design ou usabilidade",
	            "impact": "Explicação do impacto negativo para o usuário",
	            "suggestion": "Solução concreta e acionável para resolver o problema",
	            "category": "Usabilidade|Acessibilidade|Visual|Navegação|Hierarquia"
	        }
	    ]
	}

	**Critérios de Avaliação:**
	- Usabilidade: Facilidade de uso e compreensão
	- Acessibilidade: Inclusão de usuários com diferentes necessidades
	- Visual: Hierarquia, contraste e organização
	- Navegação: Clareza e intuitividade da interface
	- Hierarquia: Estrutura visual e importância dos elementos

	Seja específico, construtivo e focado em melhorias práticas. Analise como um designer experiente que quer criar a melhor experiência possível para o usuário.`)

// BuildPrompt renders the analysis instruction text, substituting the
// caller's product context verbatim or a generic placeholder when absent.
func BuildPrompt(productContext string) string {
	context := strings.TrimSpace(productContext)
	if context == "" {
		context = defaultProductContext
	}
	return strings.TrimSpace(fmt.Sprintf(promptTemplate, context))
}
