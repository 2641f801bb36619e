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
	timesjobsCardSelectors = []string{
		"li.clearfix.job-bx",
		"li.job-bx",
	}
	timesjobsTitleSelectors = []string{
		"h2 a",
		"h3.joblist-title a",
	}
	timesjobsCompanySelectors = []string{
		"h3.joblist-comp-name",
		"span.comp-name",
	}
	timesjobsLocationSelectors = []string{
		"ul.top-jd-dtl li span",
		"span.srp-zindex span",
	}
	timesjobsLinkSelectors = []string{
		"h2 a",
		"h3.joblist-title a",
	}
)

// TimesJobs scrapes timesjobs.com search result pages. Listings there are
// India-centric, which complements the other boards for the curated
// Indian location set.
type TimesJobs struct {
	client  *Client
	baseURL string
	logger  *slog.Logger
}

var _ source.Source = (*TimesJobs)(nil)

// NewTimesJobs wires the shared fetch client.
func NewTimesJobs(client *Client, logger *slog.Logger) *TimesJobs {
	if client == nil {
		client = NewClient()
	}
	return &TimesJobs{client: client, logger: logger}
}

func (s *TimesJobs) Name() domain.SourceName {
	return domain.SourceTimesJobs
}

// Fetch retrieves up to req.MaxResults postings for one query/location.
func (s *TimesJobs) Fetch(ctx context.Context, req source.Request) ([]domain.JobPosting, error) {
	base := s.baseURL
	if base == "" {
		base = "https://www.timesjobs.com/candidate/job-search.html"
	}
	params := url.Values{}
	params.Set("searchType", "personalizedSearch")
	params.Set("from", "submit")
	params.Set("txtKeywords", req.Query)
	params.Set("txtLocation", req.Location)

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

func (s *TimesJobs) parse(doc *goquery.Document, req source.Request) []domain.JobPosting {
	var jobs []domain.JobPosting

	findCards(doc, timesjobsCardSelectors).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := firstText(card, timesjobsTitleSelectors)
		if len(title) < 2 {
			return true
		}

		// Company names come with trailing "(More Jobs)" noise.
		company := firstText(card, timesjobsCompanySelectors)
		if idx := strings.Index(company, "("); idx > 0 {
			company = strings.TrimSpace(company[:idx])
		}
		if company == "" {
			company = "Company not specified"
		}

		location := firstText(card, timesjobsLocationSelectors)
		if location == "" {
			location = req.Location
		}

		link := firstAttr(card, timesjobsLinkSelectors, "href")
		if link == "" {
			return true
		}
		if !strings.HasPrefix(link, "http") {
			link = "https://www.timesjobs.com" + link
		}

		jobs = append(jobs, domain.JobPosting{
			Title:     truncate(title, maxTextLen),
			Company:   truncate(company, maxTextLen),
			Location:  truncate(location, maxTextLen),
			ApplyLink: truncate(link, maxLinkLen),
			Source:    domain.SourceTimesJobs,
		})
		return len(jobs) < req.MaxResults
	})

	return jobs
}
