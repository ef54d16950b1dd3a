package worker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/pipeline"
)

// fakeChecker records the texts it processed
type fakeChecker struct {
	calls atomic.Int32
}

func (f *fakeChecker) Process(ctx context.Context, text string, selectedAgents []string) (*model.Report, error) {
	f.calls.Add(1)
	return &model.Report{OriginalText: text, CorrectedText: text}, nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestBatchProcessor_Files(t *testing.T) {
	checker := &fakeChecker{}
	processor := NewBatchProcessor(checker, nil, nil, 2, nil)

	first := writeTempFile(t, "uno.txt", "El primer texto.")
	second := writeTempFile(t, "dos.txt", "El segundo texto.")

	results := processor.ProcessSources(context.Background(), []string{first, second})
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, result := range results {
		if result.Error != nil {
			t.Errorf("Expected no error for %s, got %v", result.Source, result.Error)
		}
		if result.Report == nil {
			t.Errorf("Expected report for %s", result.Source)
		}
	}
	if checker.calls.Load() != 2 {
		t.Errorf("Expected 2 checker calls, got %d", checker.calls.Load())
	}
}

func TestBatchProcessor_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&fakeChecker{}, nil, nil, 1, nil)

	results := processor.ProcessSources(context.Background(), []string{"/no/existe.txt"})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("Expected error for missing file")
	}
}

func TestBatchProcessor_URLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html><body><p>Texto desde la web.</p></body></html>")
	}))
	defer server.Close()

	checker := &fakeChecker{}
	fetcher := pipeline.NewFetcher(5*time.Second, "test-agent", 1<<20, false, "", "")
	processor := NewBatchProcessor(checker, fetcher, NewLimiter(100, 5), 1, nil)

	results := processor.ProcessSources(context.Background(), []string{server.URL + "/pagina"})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Fatalf("Expected no error, got %v", results[0].Error)
	}
	if !strings.Contains(results[0].Report.OriginalText, "Texto desde la web.") {
		t.Errorf("Expected extracted page text, got %q", results[0].Report.OriginalText)
	}
}

func TestBatchProcessor_URLWithoutFetcher(t *testing.T) {
	processor := NewBatchProcessor(&fakeChecker{}, nil, nil, 1, nil)

	results := processor.ProcessSources(context.Background(), []string{"https://ejemplo.es/pagina"})
	if results[0].Error == nil {
		t.Error("Expected error for URL source without fetcher")
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	list := writeTempFile(t, "fuentes.txt", `# comentario
uno.txt

dos.txt
uno.txt
https://ejemplo.es/pagina
`)

	sources, err := ReadSourcesFromFile(list)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"uno.txt", "dos.txt", "https://ejemplo.es/pagina"}
	if len(sources) != len(want) {
		t.Fatalf("Expected %d sources, got %d: %v", len(want), len(sources), sources)
	}
	for i, source := range want {
		if sources[i] != source {
			t.Errorf("Expected source %q at %d, got %q", source, i, sources[i])
		}
	}
}

func TestProcessListFile(t *testing.T) {
	text := writeTempFile(t, "texto.txt", "El texto del archivo.")
	list := writeTempFile(t, "lista.txt", text+"\n")

	processor := NewBatchProcessor(&fakeChecker{}, nil, nil, 1, nil)
	results, err := processor.ProcessListFile(context.Background(), list)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].Error != nil {
		t.Fatalf("Expected 1 clean result, got %v", results)
	}
	if results[0].Report.OriginalText != "El texto del archivo." {
		t.Errorf("Unexpected text: %q", results[0].Report.OriginalText)
	}
}
