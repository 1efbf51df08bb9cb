package culler

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/mystart/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single link.
type Result struct {
	Item       model.LinkItem
	GroupID    string
	GroupTitle string
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// Options controls a check run.
type Options struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string // 404s on these domains count as "possibly private"
}

// DefaultOptions returns the options used by the cull command.
func DefaultOptions(excludeDomains []string) Options {
	return Options{
		Concurrency:    10,
		Timeout:        10 * time.Second,
		ExcludeDomains: excludeDomains,
	}
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

type target struct {
	item  model.LinkItem
	group *model.Group
}

// CheckStore checks every link in the collection concurrently.
// Results keep the collection order.
func CheckStore(ctx context.Context, store *model.Store, opts Options, onProgress ProgressFunc) []Result {
	var targets []target
	for gi := range store.Groups {
		g := &store.Groups[gi]
		for _, it := range g.Items {
			targets = append(targets, target{item: it, group: g})
		}
	}
	if len(targets) == 0 {
		return nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excludeMap := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(targets))
	jobs := make(chan int, len(targets))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				t := targets[idx]
				r := checkURL(ctx, client, t.item.URL, excludeMap)
				r.Item = t.item
				r.GroupID = t.group.ID
				r.GroupTitle = t.group.Title
				results[idx] = r

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(targets))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// Filter returns the results with the given status.
func Filter(results []Result, status Status) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// checkURL checks a single URL. HEAD first, GET as fallback.
func checkURL(ctx context.Context, client *http.Client, rawURL string, excludeMap map[string]bool) Result {
	var result Result

	resp, err := do(ctx, client, http.MethodHead, rawURL)
	if err != nil {
		// some servers don't support HEAD
		resp, err = do(ctx, client, http.MethodGet, rawURL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if isExcludedDomain(rawURL, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 5xx, 403 and friends may be temporary or need auth
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the URL's domain is in the exclude list.
// "api.github.com" matches "github.com".
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
