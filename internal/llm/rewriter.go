package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/menpente/aclarador-clean/internal/cache"
	"github.com/menpente/aclarador-clean/internal/model"
)

// Rewriter wraps a provider with rate limiting and response caching.
// A rewrite never fails the surrounding analysis: every problem is
// reported as a warning on the result instead of an error.
type Rewriter struct {
	provider Provider
	limiter  *rate.Limiter
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewRewriter creates a rewriter. provider may be nil (rewriting
// disabled); limiter and cache may be nil to skip throttling and
// caching.
func NewRewriter(provider Provider, limiter *rate.Limiter, c cache.Cache, cacheTTL time.Duration) *Rewriter {
	return &Rewriter{
		provider: provider,
		limiter:  limiter,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Rewrite rewrites text guided by the analysis. The returned result is
// never nil.
func (r *Rewriter) Rewrite(ctx context.Context, text string, analysis *model.Analysis) *model.RewriteResult {
	if r.provider == nil {
		return &model.RewriteResult{
			Enabled:  false,
			Warnings: []string{"reescritura no disponible: ningún proveedor configurado"},
		}
	}

	var issues []model.Issue
	if analysis != nil {
		issues = analysis.IssuesDetected
	}

	key := cache.Key("rewrite", r.provider.Name(), issuesKey(issues), text)
	if r.cache != nil {
		if data, ok := r.cache.Get(key); ok {
			var cached model.RewriteResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached
			}
			// Corrupt entry: drop it and rewrite
			_ = r.cache.Delete(key)
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return &model.RewriteResult{
				Enabled:  false,
				Provider: r.provider.Name(),
				Warnings: []string{fmt.Sprintf("reescritura cancelada: %v", err)},
			}
		}
	}

	resp, err := r.provider.Rewrite(ctx, RewriteRequest{
		Text:   text,
		Issues: issues,
	})
	if err != nil {
		return &model.RewriteResult{
			Enabled:  false,
			Provider: r.provider.Name(),
			Warnings: []string{fmt.Sprintf("error del proveedor %s: %v", r.provider.Name(), err)},
		}
	}

	result := &model.RewriteResult{
		Enabled:       true,
		Provider:      r.provider.Name(),
		Model:         resp.Model,
		RewrittenText: resp.Text,
		Improvements:  IdentifyImprovements(text, resp.Text),
	}

	if r.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = r.cache.Set(key, data, r.cacheTTL)
		}
	}

	return result
}

func issuesKey(issues []model.Issue) string {
	key := ""
	for _, issue := range issues {
		key += string(issue) + ","
	}
	return key
}
