package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/menpente/aclarador-clean/internal/cache"
	"github.com/menpente/aclarador-clean/internal/model"
)

// Cached wraps a Retrieval with an in-memory result cache. Identical
// queries within the TTL are served without hitting the inner store.
type Cached struct {
	inner  Retrieval
	memory cache.Cache
	ttl    time.Duration
}

// NewCached creates a caching decorator around inner
func NewCached(inner Retrieval, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cached{
		inner:  inner,
		memory: cache.NewMemoryCache(ttl, 10*time.Minute),
		ttl:    ttl,
	}
}

// RelevantGuidelines serves from cache when possible, otherwise queries the
// inner retrieval and stores the result. Inner failures are not cached.
func (c *Cached) RelevantGuidelines(ctx context.Context, text string, agentType string, issues []string, maxResults int) ([]model.Guideline, error) {
	key := cache.Key("kb", text, agentType, strings.Join(issues, ","), fmt.Sprintf("%d", maxResults))

	if data, found := c.memory.Get(key); found {
		var guidelines []model.Guideline
		if err := json.Unmarshal(data, &guidelines); err == nil {
			return guidelines, nil
		}
		// Corrupt entry: drop it and fall through to the store
		_ = c.memory.Delete(key)
	}

	guidelines, err := c.inner.RelevantGuidelines(ctx, text, agentType, issues, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(guidelines); err == nil {
		_ = c.memory.Set(key, data, c.ttl)
	}

	return guidelines, nil
}
