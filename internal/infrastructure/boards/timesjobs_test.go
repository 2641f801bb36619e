package boards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobcrawler/internal/source"
)

const timesjobsFixture = `
<html><body><ul>
  <li class="clearfix job-bx wht-shd-bx">
    <h2><a href="https://www.timesjobs.com/job-detail/python-developer-acme-1">Python Developer</a></h2>
    <h3 class="joblist-comp-name">ACME Software (More Jobs)</h3>
    <ul class="top-jd-dtl clearfix"><li><span>Chennai, Tamil Nadu</span></li></ul>
  </li>
  <li class="clearfix job-bx wht-shd-bx">
    <h2><a href="/job-detail/data-engineer-2">Data Engineer</a></h2>
    <h3 class="joblist-comp-name">DataWorks</h3>
  </li>
</ul></body></html>`

func TestTimesJobsParse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("txtKeywords") == "" {
			t.Errorf("expected txtKeywords parameter, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(timesjobsFixture))
	}))
	defer server.Close()

	sc := NewTimesJobs(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/candidate/job-search.html"

	jobs, err := sc.Fetch(context.Background(), source.Request{
		Query:      "python developer",
		Location:   "Chennai, Tamil Nadu",
		MaxResults: 10,
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Company != "ACME Software" {
		t.Fatalf("expected '(More Jobs)' suffix stripped, got %q", jobs[0].Company)
	}
	if jobs[0].Location != "Chennai, Tamil Nadu" {
		t.Fatalf("unexpected location: %s", jobs[0].Location)
	}
	if !strings.HasPrefix(jobs[1].ApplyLink, "https://www.timesjobs.com/") {
		t.Fatalf("relative link not resolved: %s", jobs[1].ApplyLink)
	}
}

func TestTimesJobsFieldTruncation(t *testing.T) {
	t.Parallel()

	longTitle := strings.Repeat("Senior ", 60) + "Engineer"
	page := `<html><body><ul><li class="clearfix job-bx">
	  <h2><a href="/job-detail/x-1">` + longTitle + `</a></h2>
	  <h3 class="joblist-comp-name">Shop</h3>
	</li></ul></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	sc := NewTimesJobs(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/candidate/job-search.html"

	jobs, err := sc.Fetch(context.Background(), source.Request{Query: "engineer", Location: "Delhi", MaxResults: 5})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if len(jobs[0].Title) > maxTextLen {
		t.Fatalf("title not truncated: %d chars", len(jobs[0].Title))
	}
}

func TestTimesJobsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sc := NewTimesJobs(newTestClient(server.Client()), nil)
	sc.baseURL = server.URL + "/candidate/job-search.html"

	if _, err := sc.Fetch(context.Background(), source.Request{Query: "engineer", Location: "Delhi", MaxResults: 5}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
