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

var (
	linkedinCardSelectors = []string{
		"div.base-card",
		"li div.base-search-card",
		"ul.jobs-search__results-list li",
	}
	linkedinTitleSelectors = []string{
		"h3.base-search-card__title",
		"h3.base-card__title",
	}
	linkedinCompanySelectors = []string{
		"h4.base-search-card__subtitle a",
		"h4.base-search-card__subtitle",
		"a.hidden-nested-link",
	}
	linkedinLocationSelectors = []string{
		"span.job-search-card__location",
		"div.base-search-card__metadata span",
	}
	linkedinLinkSelectors = []string{
		"a.base-card__full-link",
		"a.base-search-card--link",
		"h3 a",
	}
)

// LinkedIn scrapes the public (guest) job search pages. These are served
// without authentication but are aggressively rate limited, so the shared
// client's jitter and token bucket matter most here.
type LinkedIn struct {
	client  *Client
	baseURL string
	logger  *slog.Logger
}

var _ source.Source = (*LinkedIn)(nil)

// NewLinkedIn wires the shared fetch client.
func NewLinkedIn(client *Client, logger *slog.Logger) *LinkedIn {
	if client == nil {
		client = NewClient()
	}
	return &LinkedIn{client: client, logger: logger}
}

func (s *LinkedIn) Name() domain.SourceName {
	return domain.SourceLinkedIn
}

// Fetch retrieves up to req.MaxResults postings for one query/location.
func (s *LinkedIn) Fetch(ctx context.Context, req source.Request) ([]domain.JobPosting, error) {
	base := s.baseURL
	if base == "" {
		base = "https://www.linkedin.com/jobs/search"
	}
	params := url.Values{}
	params.Set("keywords", req.Query)
	params.Set("location", req.Location)

	doc, err := s.client.FetchDocument(ctx, base+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	jobs := s.parse(doc, req)
	if s.logger != nil {
		s.logger.Debug("parsed postings", "query", req.Query, "location", req.Location, "count", len(jobs))
	}
	return jobs, nil
}

func (s *LinkedIn) parse(doc *goquery.Document, req source.Request) []domain.JobPosting {
	var jobs []domain.JobPosting

	findCards(doc, linkedinCardSelectors).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := firstText(card, linkedinTitleSelectors)
		if len(title) < 2 {
			return true
		}

		company := firstText(card, linkedinCompanySelectors)
		if company == "" {
			company = "Company not specified"
		}
		location := firstText(card, linkedinLocationSelectors)
		if location == "" {
			location = req.Location
		}

		link := firstAttr(card, linkedinLinkSelectors, "href")
		if link == "" {
			return true
		}
		// Guest links carry tracking query params; the canonical link is
		// the path alone, which keeps dedup stable across scrapes.
		if idx := strings.Index(link, "?"); idx > 0 {
			link = link[:idx]
		}
		if !strings.HasPrefix(link, "http") {
			link = "https://www.linkedin.com" + link
		}

		jobs = append(jobs, domain.JobPosting{
			Title:     truncate(title, maxTextLen),
			Company:   truncate(company, maxTextLen),
			Location:  truncate(location, maxTextLen),
			ApplyLink: truncate(link, maxLinkLen),
			Source:    domain.SourceLinkedIn,
		})
		return len(jobs) < req.MaxResults
	})

	return jobs
}
