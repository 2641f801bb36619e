package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQueriesFromTypicalResume(t *testing.T) {
	t.Parallel()

	queries := BuildSearchQueries([]string{"Python", "Flask", "Git"})

	assert.Contains(t, queries, "python developer")
	assert.Contains(t, queries, "python engineer")
	assert.Contains(t, queries, "flask backend developer")
	assert.NotContains(t, queries, "git developer")
	assert.NotContains(t, queries, "git engineer")
}

func TestBuildSearchQueriesBounded(t *testing.T) {
	t.Parallel()

	skills := []string{
		"Python", "Java", "JavaScript", "TypeScript", "Go", "Rust",
		"Ruby", "PHP", "Kotlin", "Swift", "Scala", "Dart",
	}
	queries := BuildSearchQueries(skills)

	require.NotEmpty(t, queries)
	assert.LessOrEqual(t, len(queries), 8)

	seen := map[string]bool{}
	for _, q := range queries {
		assert.GreaterOrEqual(t, len(q), 3, "query %q too short", q)
		assert.False(t, seen[q], "duplicate query %q", q)
		seen[q] = true
	}
}

func TestBuildSearchQueriesNeverEmitsDenylisted(t *testing.T) {
	t.Parallel()

	skills := []string{"Git", "Jira", "Jenkins", "HTML", "CSS", "MySQL", "Python"}
	for _, q := range BuildSearchQueries(skills) {
		for _, tok := range strings.Fields(q) {
			_, denied := denylist[tok]
			assert.False(t, denied, "query %q contains denylisted token %q", q, tok)
		}
	}
}

func TestBuildSearchQueriesAllDenylisted(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildSearchQueries([]string{"Git", "Jira", "Confluence"}))
}

func TestBuildSearchQueriesEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildSearchQueries(nil))
	assert.Empty(t, BuildSearchQueries([]string{}))
}

func TestBuildSearchQueriesDataSkills(t *testing.T) {
	t.Parallel()

	queries := BuildSearchQueries([]string{"TensorFlow", "Pandas"})

	assert.Contains(t, queries, "tensorflow data engineer")
	assert.Contains(t, queries, "tensorflow machine learning engineer")
	assert.Contains(t, queries, "pandas data engineer")
}

func TestBuildSearchQueriesOnlyFirstTenCandidates(t *testing.T) {
	t.Parallel()

	// Eleventh skill must be ignored even when the first ten generate nothing.
	skills := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		skills = append(skills, "Git")
	}
	skills = append(skills, "Python")

	assert.Empty(t, BuildSearchQueries(skills))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"C++", "cpp"},
		{"c#", "csharp"},
		{".NET", "dotnet"},
		{"Node.js", "nodejs"},
		{"  Python  ", "python"},
		{"scikit-learn", "scikit learn"},
		{"Machine   Learning", "machine learning"},
		{"React!", "react"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}
