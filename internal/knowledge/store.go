package knowledge

import (
	"context"
	"sort"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
)

// entry is one guideline from the manual, tagged for routing
type entry struct {
	content    string
	page       int
	agentTypes []string // which agents this guideline serves
	issues     []string // issue tags that boost relevance
	keywords   []string // text keywords that boost relevance
}

// Store is an in-memory guideline store with keyword relevance ranking
type Store struct {
	entries []entry
}

// NewStore creates a store loaded with the manual excerpts
func NewStore() *Store {
	return &Store{entries: manualEntries()}
}

// RelevantGuidelines ranks the stored guidelines against the query and
// returns the top maxResults
func (s *Store) RelevantGuidelines(_ context.Context, text string, agentType string, issues []string, maxResults int) ([]model.Guideline, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	lower := strings.ToLower(text)

	type scored struct {
		entry     entry
		relevance float64
	}

	var candidates []scored
	for _, e := range s.entries {
		r := score(e, lower, agentType, issues)
		if r > 0 {
			candidates = append(candidates, scored{entry: e, relevance: r})
		}
	}

	// Stable sort keeps manual order for equal relevance, so results
	// are deterministic
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relevance > candidates[j].relevance
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	guidelines := make([]model.Guideline, 0, len(candidates))
	for _, c := range candidates {
		guidelines = append(guidelines, model.Guideline{
			Content:   c.entry.content,
			Page:      c.entry.page,
			Relevance: c.relevance,
		})
	}
	return guidelines, nil
}

// score computes relevance in [0,1]: agent-type match is the base signal,
// issue tags and keyword hits refine it
func score(e entry, lowerText string, agentType string, issues []string) float64 {
	r := 0.0

	for _, at := range e.agentTypes {
		if at == agentType {
			r = 0.5
			break
		}
	}
	if r == 0 {
		return 0
	}

	for _, issue := range issues {
		for _, tag := range e.issues {
			if tag == issue {
				r += 0.2
			}
		}
	}

	for _, kw := range e.keywords {
		if strings.Contains(lowerText, kw) {
			r += 0.05
		}
	}

	if r > 1 {
		r = 1
	}
	return r
}

// manualEntries returns the static excerpt of the lenguaje claro manual
func manualEntries() []entry {
	return []entry{
		{
			content:    "Exprese una sola idea por oración. Las oraciones que acumulan varias ideas obligan al lector a retener demasiada información y dificultan la comprensión del mensaje principal.",
			page:       12,
			agentTypes: []string{model.AgentStyle, model.AgentValidator},
			issues:     []string{"long_sentence"},
			keywords:   []string{"oración", "oraciones"},
		},
		{
			content:    "Utilice oraciones de treinta palabras o menos. A partir de ese límite la probabilidad de releer la oración crece de forma notable, especialmente en textos administrativos.",
			page:       13,
			agentTypes: []string{model.AgentStyle, model.AgentValidator},
			issues:     []string{"long_sentence"},
			keywords:   []string{"palabras"},
		},
		{
			content:    "Prefiera la voz activa. El orden sujeto, verbo y predicado deja claro quién hace qué; la voz pasiva oculta al agente de la acción y alarga la oración.",
			page:       21,
			agentTypes: []string{model.AgentStyle},
			issues:     []string{"passive_voice"},
			keywords:   []string{"fue", "fueron", "sido"},
		},
		{
			content:    "Evite la jerga y los tecnicismos innecesarios. Cuando un término técnico sea imprescindible, defínalo la primera vez que aparezca en el texto.",
			page:       27,
			agentTypes: []string{model.AgentStyle},
			issues:     []string{"complex_vocabulary"},
			keywords:   []string{"jerga", "técnico"},
		},
		{
			content:    "Los monosílabos se acentúan únicamente para distinguir palabras que se escriben igual: él (pronombre) frente a el (artículo), sí (afirmación) frente a si (condicional), más (cantidad) frente a mas (pero).",
			page:       45,
			agentTypes: []string{model.AgentGrammar},
			issues:     []string{"grammar_error"},
			keywords:   []string{" el ", " si ", " mas ", " tu "},
		},
		{
			content:    "Revise las repeticiones involuntarias de conectores. Duplicaciones como «que que» o «de de» suelen aparecer al reorganizar frases y pasan desapercibidas en la relectura.",
			page:       48,
			agentTypes: []string{model.AgentGrammar},
			issues:     []string{"grammar_error"},
			keywords:   []string{"que que"},
		},
		{
			content:    "Mantenga la puntuación al servicio de la lectura: cada oración termina en punto y los párrafos agrupan oraciones sobre una misma idea.",
			page:       52,
			agentTypes: []string{model.AgentGrammar, model.AgentValidator},
			issues:     []string{"grammar_error"},
			keywords:   []string{"punto", "párrafo"},
		},
		{
			content:    "En textos para internet, sitúe la información esencial al principio. Los titulares largos se cortan en los resultados de búsqueda; sesenta caracteres es un límite prudente.",
			page:       63,
			agentTypes: []string{model.AgentSEO},
			issues:     []string{"seo"},
			keywords:   []string{"seo", "www.", "internet"},
		},
		{
			content:    "El posicionamiento no debe degradar la claridad: repita la palabra clave solo cuando aporte significado y use sinónimos para el resto de menciones.",
			page:       64,
			agentTypes: []string{model.AgentSEO},
			issues:     []string{"seo"},
			keywords:   []string{"palabra clave"},
		},
		{
			content:    "Antes de publicar, verifique que el texto responde a las preguntas básicas del lector: qué, quién, cuándo, cómo y dónde. Un texto claro no obliga a deducir información.",
			page:       71,
			agentTypes: []string{model.AgentValidator},
			issues:     []string{},
			keywords:   []string{},
		},
	}
}
