package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/pipeline"
)

// Checker runs the analysis pipeline over one text
type Checker interface {
	Process(ctx context.Context, text string, selectedAgents []string) (*model.Report, error)
}

// CheckResult is the outcome of checking one source
type CheckResult struct {
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// checkJob resolves one source and runs it through the checker
type checkJob struct {
	source    string
	processor *BatchProcessor
}

// Execute runs the job
func (j *checkJob) Execute(ctx context.Context) Result {
	text, err := j.processor.loadSource(ctx, j.source)
	if err != nil {
		return &CheckResult{Source: j.source, Error: err}
	}

	report, err := j.processor.checker.Process(ctx, text, j.processor.agents)
	if err != nil {
		return &CheckResult{Source: j.source, Error: err}
	}

	return &CheckResult{Source: j.source, Report: report}
}

// BatchProcessor checks multiple sources concurrently. A source is
// either a local file path or an http(s) URL.
type BatchProcessor struct {
	checker     Checker
	fetcher     *pipeline.Fetcher
	limiter     *Limiter
	concurrency int
	agents      []string
}

// NewBatchProcessor creates a batch processor. fetcher and limiter may
// be nil when only local files will be checked.
func NewBatchProcessor(checker Checker, fetcher *pipeline.Fetcher, limiter *Limiter, concurrency int, agents []string) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		fetcher:     fetcher,
		limiter:     limiter,
		concurrency: concurrency,
		agents:      agents,
	}
}

// ProcessSources checks the given sources concurrently
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*CheckResult {
	if len(sources) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&checkJob{source: source, processor: b})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessListFile reads sources from a list file and checks them
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	sources, err := ReadSourcesFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// loadSource resolves a source into the text to analyze
func (b *BatchProcessor) loadSource(ctx context.Context, source string) (string, error) {
	if isURL(source) {
		if b.fetcher == nil {
			return "", fmt.Errorf("no fetcher configured for URL source %s", source)
		}
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx, source); err != nil {
				return "", fmt.Errorf("rate limit: %w", err)
			}
		}

		page, err := b.fetcher.FetchWithRetry(ctx, source)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", source, err)
		}

		_, body, err := pipeline.ExtractText(page.HTML)
		if err != nil {
			return "", fmt.Errorf("extract text from %s: %w", source, err)
		}
		return body, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}
	return string(data), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadSourcesFromFile reads sources from a file, one per line. Empty
// lines and # comments are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
