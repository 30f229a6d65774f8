package knowledge

import "time"

// Visibility controls who may see an article.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
)

// Article is a single help-center knowledge base entry. Articles are loaded
// once at startup and are immutable for the lifetime of the process.
type Article struct {
	ID                 string     `yaml:"id"`
	Title              string     `yaml:"title"`
	Summary            string     `yaml:"summary"`
	Answer             string     `yaml:"answer"`
	CanonicalQuestions []string   `yaml:"canonical_questions"`
	Tags               []string   `yaml:"tags"`
	Category           string     `yaml:"category"`
	StepByStep         []string   `yaml:"step_by_step"`
	Examples           []string   `yaml:"examples"`
	IfNotWork          []string   `yaml:"if_not_work"`
	RelatedArticles    []string   `yaml:"related_articles"`
	LastUpdated        time.Time  `yaml:"last_updated"`
	PopularityScore    float64    `yaml:"popularity_score"`
	Visibility         Visibility `yaml:"visibility"`
}
