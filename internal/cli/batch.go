package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/pipeline"
	"github.com/menpente/aclarador-clean/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	rateLimit    float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <lista>",
	Short: "Analiza varios textos en paralelo",
	Long: `Batch procesa varias fuentes en paralelo:
- Lee las fuentes de un archivo de lista (una por línea)
- Cada fuente es una ruta de archivo local o una URL
- Genera un informe JSON y Markdown por fuente

Example:
  aclarador batch fuentes.txt
  aclarador batch fuentes.txt --concurrency 8 --output-dir ./informes`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./aclarador-informes", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&rateLimit, "rate-limit", 2, "max requests per second per domain")

	batchCmd.Flags().StringSliceVar(&agentList, "agents", nil, "agents to run (default: analyzer recommendation)")
	batchCmd.Flags().BoolVar(&noKB, "no-kb", false, "disable manual guideline lookup")
	batchCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks when fetching URLs")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	coordinator := pipeline.NewCoordinator(buildRetrieval())
	fetcher := pipeline.NewFetcher(30*time.Second, userAgent, maxBytes, !noRobots, "", "")
	limiter := worker.NewLimiter(rateLimit, 5)

	processor := worker.NewBatchProcessor(coordinator, fetcher, limiter, concurrency, selectedAgents())

	fmt.Fprintf(os.Stderr, "Procesando %s con %d trabajadores...\n", listFile, concurrency)

	results, err := processor.ProcessListFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		successCount++

		slug := sanitizeFilename(result.Source)
		if err := writeBatchReport(result.Report, slug); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}

		quality := "-"
		if result.Report.FinalValidation != nil {
			quality = fmt.Sprintf("%.0f%%", result.Report.FinalValidation.QualityScore*100)
		}
		fmt.Fprintf(os.Stderr, "✓ %s (calidad: %s)\n", result.Source, quality)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Correctos: %d  Fallidos: %d  Salida: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

func writeBatchReport(report *model.Report, slug string) error {
	data, err := pipeline.RenderJSON(report)
	if err != nil {
		return fmt.Errorf("render JSON: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, slug+".json"), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}

	md := pipeline.FormatReport(report)
	if err := os.WriteFile(filepath.Join(outputDir, slug+".md"), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write Markdown: %w", err)
	}

	return nil
}

// sanitizeFilename turns a source path or URL into a safe file name
func sanitizeFilename(source string) string {
	s := strings.TrimPrefix(source, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "informe"
	}
	return s
}
