package boards

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/source"
)

// Selector sets for Indeed result pages. The primary set matches the
// current markup; the fallbacks cover older card layouts that still show
// up behind some regional domains.
var (
	indeedCardSelectors = []string{
		"div.job_seen_beacon",
		"div.cardOutline",
		"td.resultContent",
	}
	indeedTitleSelectors = []string{
		"h2.jobTitle span[title]",
		"h2.jobTitle a",
		"a.jcs-JobTitle span",
	}
	indeedCompanySelectors = []string{
		"span[data-testid='company-name']",
		"span.companyName",
	}
	indeedLocationSelectors = []string{
		"div[data-testid='text-location']",
		"div.companyLocation",
	}
	indeedLinkSelectors = []string{
		"h2.jobTitle a",
		"a.jcs-JobTitle",
	}
)

// Indeed scrapes Indeed search result pages.
type Indeed struct {
	client  *Client
	baseURL string // set by tests; empty means locale-resolved per request
	logger  *slog.Logger
}

var _ source.Source = (*Indeed)(nil)

// NewIndeed wires the shared fetch client.
func NewIndeed(client *Client, logger *slog.Logger) *Indeed {
	if client == nil {
		client = NewClient()
	}
	return &Indeed{client: client, logger: logger}
}

// Name identifies the adapter inside the registry.
func (s *Indeed) Name() domain.SourceName {
	return domain.SourceIndeed
}

// Fetch retrieves up to req.MaxResults postings for one query/location.
func (s *Indeed) Fetch(ctx context.Context, req source.Request) ([]domain.JobPosting, error) {
	doc, err := s.client.FetchDocument(ctx, s.searchURL(req))
	if err != nil {
		return nil, err
	}
	jobs := s.parse(doc, req)
	if s.logger != nil {
		s.logger.Debug("parsed postings", "query", req.Query, "location", req.Location, "count", len(jobs))
	}
	return jobs, nil
}

func (s *Indeed) searchURL(req source.Request) string {
	base := s.baseURL
	if base == "" {
		// The Indian domain surfaces local listings the global one hides.
		if isIndianLocation(req.Location) {
			base = "https://in.indeed.com/jobs"
		} else {
			base = "https://www.indeed.com/jobs"
		}
	}
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("l", req.Location)
	return base + "?" + params.Encode()
}

func (s *Indeed) parse(doc *goquery.Document, req source.Request) []domain.JobPosting {
	var jobs []domain.JobPosting

	findCards(doc, indeedCardSelectors).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := firstText(card, indeedTitleSelectors)
		if len(title) < 2 {
			return true
		}

		company := firstText(card, indeedCompanySelectors)
		if company == "" {
			company = "Company not specified"
		}
		location := firstText(card, indeedLocationSelectors)
		if location == "" {
			location = req.Location
		}

		link := firstAttr(card, indeedLinkSelectors, "href")
		if link == "" {
			return true
		}
		if !strings.HasPrefix(link, "http") {
			link = strings.TrimSuffix(s.domain(req), "/") + link
		}

		jobs = append(jobs, domain.JobPosting{
			Title:     truncate(title, maxTextLen),
			Company:   truncate(company, maxTextLen),
			Location:  truncate(location, maxTextLen),
			ApplyLink: truncate(link, maxLinkLen),
			Source:    domain.SourceIndeed,
		})
		return len(jobs) < req.MaxResults
	})

	return jobs
}

func (s *Indeed) domain(req source.Request) string {
	if s.baseURL != "" {
		if u, err := url.Parse(s.baseURL); err == nil {
			return u.Scheme + "://" + u.Host
		}
	}
	if isIndianLocation(req.Location) {
		return "https://in.indeed.com"
	}
	return "https://www.indeed.com"
}
