package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/menpente/aclarador-clean/internal/util"
)

const fetchMaxRetries = 3

// fetchSleepFunc is replaceable for tests
var fetchSleepFunc = time.Sleep

// Fetcher downloads web pages whose text will be analyzed
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	maxBytes    int64
	checkRobots bool
	robots      *util.RobotsChecker
}

// NewFetcher creates a fetcher. maxBytes caps how much of a response
// body is read; checkRobots enables robots.txt enforcement.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, checkRobots bool, httpProxy, httpsProxy string) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxBytes:    maxBytes,
		checkRobots: checkRobots,
	}
	if checkRobots {
		f.robots = util.NewRobotsChecker(userAgent, timeout)
	}
	return f
}

// FetchResult contains a downloaded page
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Fetch retrieves the page at rawURL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.checkRobots {
		allowed, err := f.robots.Allowed(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// FetchWithRetry fetches with up to fetchMaxRetries attempts, backing
// off between transient failures
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error

	for attempt := 1; attempt <= fetchMaxRetries; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < fetchMaxRetries {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
		}
	}

	return nil, lastErr
}

// isRetryableFetchError reports whether an error is worth retrying:
// 5xx, 429, and transport-level failures
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	for _, status := range []string{"429", "500", "502", "503", "504"} {
		if strings.Contains(msg, "unexpected status: "+status) {
			return true
		}
	}
	return strings.HasPrefix(msg, "fetch: ")
}

// ExtractText pulls the title and visible body text out of an HTML page.
// Script, style, and navigation chrome are skipped.
func ExtractText(htmlContent string) (title, body string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer":
				return
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title, strings.TrimSpace(buf.String()), nil
}
