// Package query turns a user's raw skill list into a bounded set of job
// board search queries. Skills are noisy free text extracted from resumes,
// so candidates are normalized and filtered against a denylist before any
// query is composed from them.
package query

import "strings"

const (
	maxCandidates = 10
	maxQueries    = 8
	minQueryLen   = 3
)

// BuildSearchQueries produces a deduplicated, ordered sequence of search
// queries from raw skills. At most maxQueries queries are returned; an
// empty or fully denylisted skill list yields nil and the caller must
// short-circuit the scrape.
func BuildSearchQueries(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}

	candidates := skills
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	var queries []string
	seen := map[string]struct{}{}
	add := func(q string) {
		if len(queries) >= maxQueries {
			return
		}
		q = strings.TrimSpace(q)
		if len(q) < minQueryLen || containsDenied(q) {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	for _, raw := range candidates {
		skill := Normalize(raw)
		if skill == "" {
			continue
		}
		if _, denied := denylist[skill]; denied {
			continue
		}

		if _, ok := languages[skill]; ok {
			add(skill + " developer")
			add(skill + " engineer")
		}
		if _, ok := dataSkills[skill]; ok {
			add(skill + " data engineer")
			add(skill + " machine learning engineer")
		}
		if _, ok := webFrameworks[skill]; ok {
			add(skill + " backend developer")
			add(skill + " full stack developer")
		}

		if len(queries) >= maxQueries {
			break
		}
	}

	return queries
}

// Normalize lowercases a skill, maps names whose punctuation carries
// meaning (c++, c#, .net), strips remaining punctuation, and collapses
// whitespace.
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))

	switch s {
	case "c++":
		return "cpp"
	case "c#":
		return "csharp"
	case ".net":
		return "dotnet"
	case "node.js", "node":
		return "nodejs"
	case "next.js":
		return "nextjs"
	case "nuxt.js":
		return "nuxtjs"
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '/':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// containsDenied reports whether any denylisted keyword occurs in the
// generated query. This is the second line of defense: even a query
// composed from an allowed skill is rejected if a denied fragment slipped
// in (e.g. "git developer").
func containsDenied(q string) bool {
	for _, tok := range strings.Fields(q) {
		if _, ok := denylist[tok]; ok {
			return true
		}
	}
	for denied := range denylist {
		if strings.Contains(denied, " ") && strings.Contains(q, denied) {
			return true
		}
	}
	return false
}
