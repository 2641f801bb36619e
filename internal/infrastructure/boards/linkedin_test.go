package boards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobcrawler/internal/source"
)

const linkedinFixture = `
<html><body>
  <div class="base-card">
    <h3 class="base-search-card__title">Flask Backend Developer</h3>
    <h4 class="base-search-card__subtitle"><a>WebWorks</a></h4>
    <span class="job-search-card__location">Pune, Maharashtra, India</span>
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/flask-backend-developer-at-webworks-1234?refId=track&amp;trackingId=abc"></a>
  </div>
  <div class="base-card">
    <h3 class="base-search-card__title">Django Developer</h3>
    <a class="base-card__full-link" href="/jobs/view/django-developer-5678"></a>
  </div>
</body></html>`

func TestLinkedInParse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keywords") == "" {
			t.Errorf("expected keywords parameter, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(linkedinFixture))
	}))
	defer server.Close()

	sc := NewLinkedIn(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/jobs/search"

	jobs, err := sc.Fetch(context.Background(), source.Request{
		Query:      "flask backend developer",
		Location:   "Pune, Maharashtra",
		MaxResults: 10,
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Flask Backend Developer" {
		t.Fatalf("unexpected title: %s", jobs[0].Title)
	}
	if jobs[0].Company != "WebWorks" {
		t.Fatalf("unexpected company: %s", jobs[0].Company)
	}

	// Tracking params must be stripped so the same posting dedupes
	// across scrape cycles.
	if strings.Contains(jobs[0].ApplyLink, "?") {
		t.Fatalf("tracking params not stripped: %s", jobs[0].ApplyLink)
	}

	if jobs[1].Company != "Company not specified" {
		t.Fatalf("unexpected company default: %s", jobs[1].Company)
	}
	if jobs[1].Location != "Pune, Maharashtra" {
		t.Fatalf("expected request location fallback, got %s", jobs[1].Location)
	}
	if !strings.HasPrefix(jobs[1].ApplyLink, "https://www.linkedin.com/") {
		t.Fatalf("relative link not resolved: %s", jobs[1].ApplyLink)
	}
}

func TestLinkedInEmptyResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><div>no results for your search</div></body></html>"))
	}))
	defer server.Close()

	sc := NewLinkedIn(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/jobs/search"

	jobs, err := sc.Fetch(context.Background(), source.Request{Query: "cobol developer", Location: "Remote", MaxResults: 5})
	if err != nil {
		t.Fatalf("empty page must not error, got: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestLinkedInRateLimited(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sc := NewLinkedIn(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/jobs/search"

	jobs, err := sc.Fetch(context.Background(), source.Request{Query: "python developer", Location: "Remote", MaxResults: 5})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs when rate limited, got %d", len(jobs))
	}
}
