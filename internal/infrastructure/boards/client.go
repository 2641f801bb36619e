// Package boards holds the concrete job board adapters (Indeed, LinkedIn,
// TimesJobs) and the HTTP plumbing they share. Every adapter follows the
// same resilience contract: network errors, block responses and markup
// changes produce an empty result, never a crash of the scrape cycle.
package boards

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// userAgents is rotated randomly per request so repeated scrapes do not
// present a single fingerprint to the boards.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

// Client is the fetch layer shared by all adapters: randomized headers,
// a randomized pre-request delay, a token bucket on outbound requests and
// a bounded timeout per call.
type Client struct {
	http     *http.Client
	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
}

// NewClient builds a client with the shared defaults. One request every
// two seconds keeps a full cycle well under typical rate limits.
func NewClient() *Client {
	return &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 2),
		minDelay: 1 * time.Second,
		maxDelay: 4 * time.Second,
	}
}

// FetchDocument performs one polite GET: jitter sleep, rate limit wait,
// browser-looking headers, then a parsed goquery document. Non-200
// responses (including explicit block signals like 403) are errors.
func (c *Client) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.sleepJitter(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", req.URL.Host, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (c *Client) sleepJitter(ctx context.Context) error {
	if c.maxDelay <= 0 {
		return nil
	}
	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// firstText tries each selector in order against sel and returns the first
// non-empty trimmed text. Boards change their markup over time, so every
// field is extracted through an ordered strategy list like this one.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr tries each selector in order and returns the first non-empty
// value of attr.
func firstAttr(sel *goquery.Selection, selectors []string, attr string) string {
	for _, s := range selectors {
		if v, ok := sel.Find(s).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// findCards returns the result set of the first card selector that
// matches anything.
func findCards(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if cards := doc.Find(s); cards.Length() > 0 {
			return cards
		}
	}
	return doc.Find(selectors[len(selectors)-1])
}

// truncate bounds a field before it reaches storage. The cut backs up
// to a rune boundary so multi-byte text (Devanagari locations, for one)
// stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

const (
	maxTextLen = 200
	maxLinkLen = 500
)

// indianCities marks locations for which the .in variants of the boards
// return far better results than the global domains.
var indianCities = []string{
	"india", "bangalore", "bengaluru", "chandigarh", "delhi", "gurgaon",
	"noida", "pune", "hyderabad", "mumbai", "chennai", "kolkata",
}

func isIndianLocation(location string) bool {
	l := strings.ToLower(location)
	for _, city := range indianCities {
		if strings.Contains(l, city) {
			return true
		}
	}
	return false
}
