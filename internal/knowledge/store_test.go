package knowledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/menpente/aclarador-clean/internal/model"
)

func TestStore_FiltersByAgentType(t *testing.T) {
	store := NewStore()

	guidelines, err := store.RelevantGuidelines(context.Background(), "texto de prueba", model.AgentSEO, nil, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(guidelines) == 0 {
		t.Fatal("Expected SEO guidelines")
	}
	for _, g := range guidelines {
		if g.Page != 63 && g.Page != 64 {
			t.Errorf("Expected only SEO manual pages, got page %d", g.Page)
		}
	}
}

func TestStore_IssueTagsBoostRelevance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	plain, err := store.RelevantGuidelines(ctx, "texto", model.AgentStyle, nil, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tagged, err := store.RelevantGuidelines(ctx, "texto", model.AgentStyle, []string{"passive_voice"}, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(tagged) == 0 || len(plain) == 0 {
		t.Fatal("Expected style guidelines in both queries")
	}

	// With the passive_voice tag the active-voice guideline must rank first
	if tagged[0].Page != 21 {
		t.Errorf("Expected active-voice guideline (page 21) first, got page %d", tagged[0].Page)
	}
}

func TestStore_CapsResults(t *testing.T) {
	store := NewStore()

	guidelines, err := store.RelevantGuidelines(context.Background(), "texto", model.AgentStyle, []string{"long_sentence", "passive_voice"}, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(guidelines) > 2 {
		t.Errorf("Expected at most 2 guidelines, got %d", len(guidelines))
	}
}

func TestStore_EmptyIssuesTolerated(t *testing.T) {
	store := NewStore()

	if _, err := store.RelevantGuidelines(context.Background(), "texto", model.AgentGrammar, []string{}, 2); err != nil {
		t.Fatalf("Expected empty issues to be tolerated, got %v", err)
	}
}

func TestStore_RelevanceInRange(t *testing.T) {
	store := NewStore()

	guidelines, err := store.RelevantGuidelines(context.Background(), "el texto fue revisado punto por punto", model.AgentStyle, []string{"long_sentence", "passive_voice", "complex_vocabulary"}, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, g := range guidelines {
		if g.Relevance < 0 || g.Relevance > 1 {
			t.Errorf("Expected relevance in [0,1], got %f", g.Relevance)
		}
	}
}

// countingRetrieval counts calls to the inner store
type countingRetrieval struct {
	calls int
	err   error
}

func (c *countingRetrieval) RelevantGuidelines(_ context.Context, _, _ string, _ []string, _ int) ([]model.Guideline, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []model.Guideline{{Content: "guía", Page: 1, Relevance: 0.5}}, nil
}

func TestCached_ServesRepeatsFromCache(t *testing.T) {
	inner := &countingRetrieval{}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		guidelines, err := cached.RelevantGuidelines(ctx, "texto", model.AgentGrammar, []string{"grammar_error"}, 2)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(guidelines) != 1 || guidelines[0].Content != "guía" {
			t.Fatalf("Unexpected guidelines: %v", guidelines)
		}
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 inner call, got %d", inner.calls)
	}
}

func TestCached_DistinctQueriesMiss(t *testing.T) {
	inner := &countingRetrieval{}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, _ = cached.RelevantGuidelines(ctx, "texto", model.AgentGrammar, nil, 2)
	_, _ = cached.RelevantGuidelines(ctx, "texto", model.AgentStyle, nil, 2)

	if inner.calls != 2 {
		t.Errorf("Expected 2 inner calls for distinct queries, got %d", inner.calls)
	}
}

func TestCached_ErrorsNotCached(t *testing.T) {
	inner := &countingRetrieval{err: errors.New("store down")}
	cached := NewCached(inner, time.Minute)
	ctx := context.Background()

	if _, err := cached.RelevantGuidelines(ctx, "texto", model.AgentGrammar, nil, 2); err == nil {
		t.Fatal("Expected error from inner store")
	}

	inner.err = nil
	guidelines, err := cached.RelevantGuidelines(ctx, "texto", model.AgentGrammar, nil, 2)
	if err != nil {
		t.Fatalf("Expected recovery after inner store healed, got %v", err)
	}
	if len(guidelines) != 1 {
		t.Errorf("Expected 1 guideline after recovery, got %d", len(guidelines))
	}
}
