package usecase

import (
	"context"
	"strings"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/match"
	"jobcrawler/internal/ports"
)

// SearchRequest is one read over the persisted postings. UserID is
// optional; when set, results are scored and ranked against that
// user's skills.
type SearchRequest struct {
	Query    string
	Location string
	UserID   string
	Limit    int
}

const defaultSearchLimit = 50

// SearchService serves the read path over stored postings.
type SearchService struct {
	jobs  ports.JobRepository
	users ports.UserStore
}

func NewSearchService(jobs ports.JobRepository, users ports.UserStore) *SearchService {
	return &SearchService{jobs: jobs, users: users}
}

// Search returns stored postings matching the request. Anonymous
// searches come back newest first with zero scores; personalized ones
// are ranked by match score.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]domain.ScoredJob, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	filter := ports.SearchFilter{Query: req.Query, Limit: limit}
	// "india" spans the whole curated set, so it leaves the location
	// filter open; "remote" narrows to remote-tagged rows.
	switch strings.ToLower(strings.TrimSpace(req.Location)) {
	case "", "india":
	case "remote":
		filter.Location = "Remote"
	default:
		filter.Location = req.Location
	}

	stored, err := s.jobs.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if req.UserID == "" {
		out := make([]domain.ScoredJob, len(stored))
		for i, job := range stored {
			out[i] = domain.ScoredJob{JobPosting: job}
		}
		return out, nil
	}

	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return match.Rank(stored, user.Skills), nil
}
