package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/menpente/aclarador-clean/internal/cache"
	"github.com/menpente/aclarador-clean/internal/llm"
	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/pipeline"
)

var (
	llmProvider string
	llmModel    string
	llmBaseURL  string
	noCache     bool
)

// rewriteCmd represents the rewrite command
var rewriteCmd = &cobra.Command{
	Use:   "rewrite [texto]",
	Short: "Reescribe un texto con un modelo de lenguaje",
	Long: `Rewrite pasa el texto por los agentes de análisis y después lo
reescribe por completo con un modelo de lenguaje, guiado por los
problemas detectados.

La clave del proveedor se toma de la variable de entorno
correspondiente: OPENAI_API_KEY, GROQ_API_KEY o ANTHROPIC_API_KEY.

Example:
  aclarador rewrite "El texto confuso que queremos aclarar." --provider groq
  aclarador rewrite --file documento.txt --provider openai --model gpt-4o-mini
  aclarador rewrite --file documento.txt --provider ollama --model llama3.1:8b`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().StringVar(&inFile, "file", "", "read the text from a file")
	rewriteCmd.Flags().StringVar(&llmProvider, "provider", "groq", "LLM provider (openai, groq, anthropic, ollama)")
	rewriteCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (provider default when empty)")
	rewriteCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "custom provider endpoint")
	rewriteCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the rewrite response cache")

	rewriteCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	rewriteCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	rewriteCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	text, err := loadInputText(ctx, args)
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("configure provider: %w", err)
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured (use --provider)")
	}

	coordinator := pipeline.NewCoordinator(buildRetrieval())
	report, err := coordinator.Process(ctx, text, nil)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rewriter := llm.NewRewriter(provider, rate.NewLimiter(rate.Limit(cfg.LLM.RateLimit), 1), rewriteCache(cfg), cfg.Cache.MemoryTTL)

	if verbose {
		fmt.Fprintf(os.Stderr, "Reescribiendo con %s...\n", provider.Name())
	}

	// The rewrite starts from the rule-corrected text
	report.Rewrite = rewriter.Rewrite(ctx, report.CorrectedText, &report.Analysis)

	return writeReport(report)
}

// rewriteCache builds the cache for rewrite responses: layered when a
// cache dir is configured, memory-only otherwise
func rewriteCache(cfg *model.Config) cache.Cache {
	if noCache || !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Dir != "" {
		return cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	return cache.NewMemoryCache(cfg.Cache.MemoryTTL, cfg.Cache.MemoryTTL)
}
