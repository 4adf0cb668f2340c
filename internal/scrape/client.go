package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// UserAgent mimics a desktop browser; the schedule site serves a reduced
	// page to unknown clients.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// FetchTimeout bounds a single schedule fetch. No retries: on timeout or
	// transport failure the scrape fails fast.
	FetchTimeout = 10 * time.Second
)

// Fetcher retrieves the raw HTML of a schedule page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// httpFetcher is the default fetch path: one plain GET, fully buffered.
type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns the default HTTP fetcher.
func NewHTTPFetcher() Fetcher {
	return &httpFetcher{
		client: &http.Client{Timeout: FetchTimeout},
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// browserFetcher renders the page in headless Chrome before extraction, for
// markup that only materializes after script execution.
type browserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowserFetcher returns a chromedp-backed fetcher. Call Close when done.
func NewBrowserFetcher() *browserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &browserFetcher{allocCtx: allocCtx, cancel: cancel}
}

// Close releases the browser allocator.
func (f *browserFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *browserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return html, nil
}

// parseHTML converts raw HTML to a goquery document.
func parseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
