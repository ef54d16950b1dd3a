package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/menpente/aclarador-clean/internal/knowledge"
	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/pipeline"
)

var (
	inFile    string
	inURL     string
	agentList []string
	noKB      bool
	outJSON   string
	outMD     string
	outHTML   string
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	noRobots  bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [texto]",
	Short: "Analiza un texto y aplica mejoras de lenguaje claro",
	Long: `Check pasa un texto por los agentes de análisis:
- El analizador clasifica el texto y detecta problemas
- El agente de gramática corrige errores frecuentes
- El agente de estilo sugiere mejoras de claridad
- El agente SEO optimiza textos web
- El validador puntúa la calidad final

El texto puede darse como argumento, con --file o con --url.

Example:
  aclarador check "El coche el es muy rápido."
  aclarador check --file documento.txt --json informe.json
  aclarador check --url https://ejemplo.es/articulo --agents grammar,style`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&inFile, "file", "", "read the text from a file")
	checkCmd.Flags().StringVar(&inURL, "url", "", "fetch the text from a web page")
	checkCmd.Flags().StringSliceVar(&agentList, "agents", nil, "agents to run (default: analyzer recommendation)")
	checkCmd.Flags().BoolVar(&noKB, "no-kb", false, "disable manual guideline lookup")

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	checkCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks when fetching URLs")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	text, err := loadInputText(ctx, args)
	if err != nil {
		return err
	}

	coordinator := pipeline.NewCoordinator(buildRetrieval())

	if verbose {
		fmt.Fprintf(os.Stderr, "Analizando %d palabras...\n", len(strings.Fields(text)))
	}

	report, err := coordinator.Process(ctx, text, selectedAgents())
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	return writeReport(report)
}

// loadInputText resolves the text from the argument, --file or --url
func loadInputText(ctx context.Context, args []string) (string, error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if inFile != "" {
		sources++
	}
	if inURL != "" {
		sources++
	}
	if sources == 0 {
		return "", fmt.Errorf("no input: pass the text as an argument, or use --file or --url")
	}
	if sources > 1 {
		return "", fmt.Errorf("ambiguous input: pass exactly one of argument, --file, --url")
	}

	switch {
	case inFile != "":
		data, err := os.ReadFile(inFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil

	case inURL != "":
		fetcher := pipeline.NewFetcher(timeout, userAgent, maxBytes, !noRobots, "", "")
		if verbose {
			fmt.Fprintf(os.Stderr, "Descargando %s...\n", inURL)
		}
		page, err := fetcher.FetchWithRetry(ctx, inURL)
		if err != nil {
			return "", fmt.Errorf("fetch url: %w", err)
		}
		_, body, err := pipeline.ExtractText(page.HTML)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
		return body, nil

	default:
		return args[0], nil
	}
}

// buildRetrieval wires the manual guideline store, cached per query
func buildRetrieval() knowledge.Retrieval {
	if noKB {
		return nil
	}
	cfg := model.DefaultConfig()
	return knowledge.NewCached(knowledge.NewStore(), cfg.Knowledge.CacheTTL)
}

// selectedAgents maps the --agents flag onto the coordinator's
// selection semantics: nil means "use the analyzer recommendation"
func selectedAgents() []string {
	if agentList == nil {
		return nil
	}
	selected := make([]string, 0, len(agentList))
	for _, name := range agentList {
		name = strings.TrimSpace(strings.ToLower(name))
		if name != "" {
			selected = append(selected, name)
		}
	}
	return selected
}

// writeReport renders the report to the requested outputs, defaulting
// to Markdown on stdout
func writeReport(report *model.Report) error {
	wrote := false

	if outJSON != "" {
		data, err := pipeline.RenderJSON(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outJSON, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		wrote = true
	}

	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(pipeline.FormatReport(report)), 0o644); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		wrote = true
	}

	if outHTML != "" {
		data, err := pipeline.RenderHTML(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outHTML, data, 0o644); err != nil {
			return fmt.Errorf("write HTML: %w", err)
		}
		wrote = true
	}

	if !wrote {
		fmt.Print(pipeline.FormatReport(report))
	}
	if verbose {
		pipeline.RenderSummary(os.Stderr, report)
	}

	return nil
}
