package services

import (
	"strings"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// SkillsDictionary matches a curated technical-skill list against free
// text. Multi-word skills are matched as phrases, single-word skills
// against the token set so partial words never hit.
type SkillsDictionary interface {
	Match(text string) *models.KeywordSet
	Size() int
}

type skillsDictionary struct {
	multiWord  []string
	singleWord map[string]bool
}

func NewSkillsDictionary() SkillsDictionary {
	return NewSkillsDictionaryWithSkills(defaultSkills)
}

func NewSkillsDictionaryWithSkills(skills []string) SkillsDictionary {
	d := &skillsDictionary{
		singleWord: make(map[string]bool),
	}
	for _, skill := range skills {
		skill = models.NormalizeTerm(skill)
		if skill == "" {
			continue
		}
		// Skills that survive tokenization as one word ("c++", "node.js")
		// go through the token pass; anything else ("ci/cd", "spring
		// boot") is phrase-matched.
		if tokens := segmentWords(skill); len(tokens) == 1 && tokens[0] == skill {
			d.singleWord[skill] = true
		} else {
			d.multiWord = append(d.multiWord, skill)
		}
	}
	return d
}

// Match implements SkillsDictionary.
func (d *skillsDictionary) Match(text string) *models.KeywordSet {
	detected := models.NewKeywordSet()
	if strings.TrimSpace(text) == "" {
		return detected
	}

	lower := strings.ToLower(text)

	// Phrase pass for multi-word skills
	for _, skill := range d.multiWord {
		if strings.Contains(lower, skill) {
			detected.Add(models.SkillTerm{Label: skill})
		}
	}

	// Token pass for single-word skills, so "java" never matches inside
	// "javascript"
	for _, word := range segmentWords(text) {
		if d.singleWord[word] {
			detected.Add(models.SkillTerm{Label: word})
		}
	}

	return detected
}

func (d *skillsDictionary) Size() int {
	return len(d.multiWord) + len(d.singleWord)
}

// defaultSkills is the built-in technical-skill vocabulary used when no
// external corpus is configured.
var defaultSkills = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "golang", "rust",
	"php", "swift", "kotlin", "scala", "r", "matlab", "sql", "perl", "bash", "powershell",
	"vba", "sas", "julia", "dart", "objective-c",

	// Web technologies
	"html", "html5", "css", "css3", "react", "reactjs", "angular", "angularjs", "vue", "vuejs",
	"node.js", "nodejs", "django", "flask", "spring", "spring boot", "express", "expressjs",
	"fastapi", "next.js", "nextjs", "gatsby", "jquery", "bootstrap", "tailwind",
	"asp.net", "laravel", "ruby on rails", "svelte",

	// Databases and data storage
	"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch", "oracle",
	"dynamodb", "cassandra", "neo4j", "sqlite", "mariadb", "microsoft sql server",
	"sql server", "couchdb", "firebase", "snowflake", "bigquery", "redshift",

	// Cloud and DevOps
	"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud",
	"docker", "kubernetes", "k8s", "jenkins", "gitlab", "github actions",
	"terraform", "ansible", "ci/cd", "circleci", "travis ci", "cloudformation",
	"vagrant", "puppet", "chef", "bamboo",

	// Data science, ML and analytics
	"machine learning", "deep learning", "nlp", "natural language processing",
	"tensorflow", "pytorch", "keras", "scikit-learn", "sklearn", "pandas", "numpy",
	"spark", "apache spark", "hadoop", "pyspark", "jupyter", "tableau", "power bi",
	"looker", "data analysis", "data analytics", "data visualization", "data mining",
	"statistical analysis", "predictive modeling", "forecasting", "time series",
	"regression", "classification", "clustering", "neural networks", "computer vision",
	"image processing", "opencv", "data warehousing", "etl", "big data",
	"business intelligence", "analytics", "quantitative analysis",

	// Operations and business
	"operations management", "process optimization", "supply chain", "inventory management",
	"logistics", "lean", "six sigma", "kaizen", "project management", "agile", "scrum",
	"kanban", "waterfall", "business analysis", "business process", "kpi", "metrics",
	"performance management", "quality assurance", "quality control", "continuous improvement",

	// Version control and collaboration
	"git", "github", "bitbucket", "svn", "mercurial", "version control",

	// Testing
	"unit testing", "integration testing", "selenium", "pytest", "junit", "jest",
	"testing", "test automation", "qa", "tdd", "bdd",

	// Other technical tools
	"linux", "unix", "windows server", "jira", "confluence", "slack", "teams",
	"rest api", "restful", "graphql", "soap", "microservices", "api",
	"json", "xml", "yaml", "grpc", "websocket", "oauth", "jwt",
	"excel", "microsoft excel", "google sheets", "macros",
	"powerpoint", "word", "office 365", "google workspace",

	// Soft skills and methods
	"leadership", "cross-functional", "stakeholder management", "communication",
	"problem solving", "critical thinking", "decision making", "strategic planning",
	"change management", "vendor management", "budget management",
	"root cause analysis", "swot analysis", "gap analysis",

	// Methodologies
	"agile methodology", "scrum methodology", "devops", "devsecops",
	"continuous integration", "continuous deployment", "automation",
}
