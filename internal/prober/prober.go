package prober

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	probeTimeout = 8 * time.Second
	probePath    = "/search?format=json&q=hello"
	userAgent    = "curl/8"
)

// Record is the outcome of probing a single instance, written as one
// JSON line. Count is present whenever a response body was inspected;
// Error is present when the attempt itself failed.
type Record struct {
	URL   string `json:"url"`
	OK    bool   `json:"ok"`
	Ms    int64  `json:"ms"`
	Count *int   `json:"count,omitempty"`
	Error string `json:"error,omitempty"`
}

// Prober checks public search instances for liveness and latency.
type Prober struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Prober. Pass nil logger to use the default logger.
func New(logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		client: &http.Client{
			Timeout: probeTimeout,
			Transport: &http.Transport{
				// Target instances are untrusted third parties and often run
				// self-signed or mismatched certificates. Reachability is what
				// is being measured here, not trust.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		logger: logger,
	}
}

// Run probes each non-blank line of list as a base URL, one at a time in
// file order, writing one JSON record per URL to out as it completes.
// After the last line it writes one trailing line: the comma-joined list
// of working URLs, each with a trailing slash, suitable for pasting into
// a configuration value. Per-URL failures never abort the pass; only a
// read error on list or a write error on out does.
func (p *Prober) Run(ctx context.Context, list io.Reader, out io.Writer) ([]string, error) {
	var working []string
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(list)
	for scanner.Scan() {
		url := strings.TrimRight(strings.TrimSpace(scanner.Text()), "/")
		if url == "" {
			continue
		}

		rec := p.probe(ctx, url)
		if err := enc.Encode(rec); err != nil {
			return working, fmt.Errorf("writing record for %q: %w", url, err)
		}
		if rec.OK {
			working = append(working, url+"/")
		}
	}
	if err := scanner.Err(); err != nil {
		return working, fmt.Errorf("reading instance list: %w", err)
	}

	if _, err := fmt.Fprintln(out, strings.Join(working, ",")); err != nil {
		return working, fmt.Errorf("writing working list: %w", err)
	}
	return working, nil
}

func (p *Prober) probe(ctx context.Context, baseURL string) Record {
	start := time.Now()
	rec := Record{URL: baseURL}

	count, ok, err := p.fetch(ctx, baseURL+probePath)
	rec.Ms = time.Since(start).Milliseconds()
	if err != nil {
		rec.Error = err.Error()
	} else {
		rec.OK = ok
		rec.Count = &count
	}

	p.logger.Debug("instance probed",
		"url", baseURL,
		"ok", rec.OK,
		"ms", rec.Ms,
		"error", rec.Error,
	)
	return rec
}

// fetch issues one GET against a search endpoint. It returns the result
// count and ok=true when the response is a 200 JSON object with a
// list-typed "results" field. A 200 response that fails that shape check
// reports ok=false without an error; transport failures and non-200
// statuses report an error.
func (p *Prober) fetch(ctx context.Context, url string) (count int, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false, nil
	}
	var results []json.RawMessage
	if err := json.Unmarshal(body["results"], &results); err != nil || results == nil {
		return 0, false, nil
	}
	return len(results), true, nil
}
