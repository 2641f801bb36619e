package query

// Keyword sets are data, not code branches: extending a category means
// adding an entry here. All entries are stored in normalized form (see
// Normalize), so lookups happen after normalization.

// denylist holds skills that are real skills but not hireable-title nouns:
// version control, ticketing, CI/CD, markup and styling, generic data
// stores. A query must never be generated from or contain one of these.
var denylist = map[string]struct{}{
	// version control
	"git": {}, "svn": {}, "mercurial": {}, "perforce": {},
	"github": {}, "gitlab": {}, "bitbucket": {},
	// ticketing and process
	"jira": {}, "confluence": {}, "trello": {}, "asana": {},
	"agile": {}, "scrum": {}, "kanban": {},
	// CI/CD
	"jenkins": {}, "travis": {}, "circleci": {}, "github actions": {}, "gitlab ci": {},
	// markup and styling
	"html": {}, "css": {}, "sass": {}, "scss": {}, "less": {},
	"xml": {}, "json": {}, "yaml": {}, "markdown": {}, "latex": {},
	// generic data stores
	"sql": {}, "mysql": {}, "postgresql": {}, "sqlite": {}, "oracle": {},
	"mongodb": {}, "redis": {}, "elasticsearch": {}, "cassandra": {}, "dynamodb": {},
}

// languages are programming languages that pair naturally with
// "developer" and "engineer".
var languages = map[string]struct{}{
	"python": {}, "java": {}, "javascript": {}, "typescript": {},
	"go": {}, "golang": {}, "rust": {}, "cpp": {}, "csharp": {}, "dotnet": {},
	"php": {}, "ruby": {}, "swift": {}, "kotlin": {}, "dart": {}, "scala": {},
}

// dataSkills are data-engineering and ML flavored skills.
var dataSkills = map[string]struct{}{
	"pandas": {}, "numpy": {}, "tensorflow": {}, "pytorch": {}, "keras": {},
	"scikit learn": {}, "spark": {}, "hadoop": {}, "kafka": {}, "airflow": {},
	"machine learning": {}, "deep learning": {}, "data science": {}, "nlp": {},
}

// webFrameworks pair with backend / full stack roles.
var webFrameworks = map[string]struct{}{
	"react": {}, "angular": {}, "vue": {}, "svelte": {},
	"django": {}, "flask": {}, "fastapi": {}, "spring": {},
	"laravel": {}, "rails": {}, "express": {}, "nodejs": {},
	"nextjs": {}, "nuxtjs": {},
}
