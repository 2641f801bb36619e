package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobcrawler/internal/domain"
)

func TestScorePartialMatch(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "Python Developer", Company: "Tech Corp"}
	result := Score(job, []string{"Python", "React"})

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, []string{"Python"}, result.MatchedSkills)
}

func TestScoreFullMatch(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "Senior Python Developer", Company: "Flask Labs"}
	result := Score(job, []string{"Python", "Flask"})

	assert.Equal(t, 100.0, result.Score)
	assert.ElementsMatch(t, []string{"Python", "Flask"}, result.MatchedSkills)
}

func TestScoreNoMatch(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "JavaScript Developer", Company: "Web Corp"}
	result := Score(job, []string{"Python", "Flask", "Django"})

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.MatchedSkills)
}

func TestScoreEmptySkills(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "Python Developer", Company: "Tech Corp"}
	result := Score(job, nil)

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.MatchedSkills)
}

func TestScoreBoundsAndRounding(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "Go Developer", Company: "Acme"}
	skills := []string{"Go", "Python", "Rust"} // 1 of 3 => 33.3

	result := Score(job, skills)
	assert.Equal(t, 33.3, result.Score)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestScoreCaseInsensitive(t *testing.T) {
	t.Parallel()

	job := domain.JobPosting{Title: "PYTHON developer", Company: "tech corp"}
	result := Score(job, []string{"python"})

	assert.Equal(t, 100.0, result.Score)
}

func TestRankSortsByScoreDescending(t *testing.T) {
	t.Parallel()

	jobs := []domain.JobPosting{
		{Title: "Java Developer", Company: "A", ApplyLink: "l1"},
		{Title: "Python Flask Developer", Company: "B", ApplyLink: "l2"},
		{Title: "Python Developer", Company: "C", ApplyLink: "l3"},
	}

	ranked := Rank(jobs, []string{"Python", "Flask"})

	assert.Equal(t, "l2", ranked[0].ApplyLink)
	assert.Equal(t, "l3", ranked[1].ApplyLink)
	assert.Equal(t, "l1", ranked[2].ApplyLink)
	assert.Equal(t, 100.0, ranked[0].Match.Score)
	assert.Equal(t, 0.0, ranked[2].Match.Score)
}
