// Package match scores a job posting against a user's skill set. The score
// is deliberately simple and explainable: the share of the user's skills
// found as substrings of the job's title and company, not an NLP model.
package match

import (
	"math"
	"sort"
	"strings"

	"jobcrawler/internal/domain"
)

// Score reports the percentage (0-100, one decimal) of userSkills that
// occur case-insensitively in the posting's title+company text, together
// with the skills that matched. Empty skills score zero.
func Score(job domain.JobPosting, userSkills []string) domain.MatchResult {
	if len(userSkills) == 0 {
		return domain.MatchResult{}
	}

	text := strings.ToLower(job.Title + " " + job.Company)

	var matched []string
	for _, skill := range userSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if strings.Contains(text, s) {
			matched = append(matched, skill)
		}
	}

	pct := float64(len(matched)) / float64(len(userSkills)) * 100
	return domain.MatchResult{
		Score:         math.Round(pct*10) / 10,
		MatchedSkills: matched,
	}
}

// Rank annotates each posting with its match against userSkills and sorts
// by score descending, preserving the incoming order among equal scores.
func Rank(jobs []domain.JobPosting, userSkills []string) []domain.ScoredJob {
	scored := make([]domain.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, domain.ScoredJob{
			JobPosting: job,
			Match:      Score(job, userSkills),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match.Score > scored[j].Match.Score
	})

	return scored
}
