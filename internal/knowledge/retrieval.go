// Package knowledge provides lookup of plain-language writing guidelines.
// The store is a static excerpt of the lenguaje claro manual; callers treat
// it as a read-only capability and must tolerate it being absent or failing.
package knowledge

import (
	"context"

	"github.com/menpente/aclarador-clean/internal/model"
)

// Retrieval is the capability consumed by agents. Implementations must be
// safe for concurrent read-only queries. A failed call is non-fatal to the
// pipeline: agents collapse it to an empty guideline list.
type Retrieval interface {
	// RelevantGuidelines returns up to maxResults guidelines ranked by
	// relevance to the text. issues may be empty.
	RelevantGuidelines(ctx context.Context, text string, agentType string, issues []string, maxResults int) ([]model.Guideline, error)
}
