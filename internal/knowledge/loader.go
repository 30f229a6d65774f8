package knowledge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// articleFile is the on-disk shape of a knowledge YAML file: either a single
// article or a list under the "articles" key.
type articleFile struct {
	Articles []Article `yaml:"articles"`
}

// LoadDir reads every YAML file under dir matching one of the include
// patterns and returns the combined article set. If patterns is empty,
// "**/*.yml" and "**/*.yaml" are used.
func LoadDir(dir string, patterns []string) ([]Article, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*.yml", "**/*.yaml"}
	}

	var articles []Article
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !matchesAny(filepath.ToSlash(rel), patterns) {
			return nil
		}

		loaded, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", rel, err)
		}
		articles = append(articles, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := validateArticles(articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func loadFile(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Files may hold a list under "articles" or a single top-level article.
	var file articleFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Articles) > 0 {
		return file.Articles, nil
	}

	var single Article
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if single.ID == "" {
		return nil, nil
	}
	return []Article{single}, nil
}

// validateArticles rejects articles that would break id-based lookups.
func validateArticles(articles []Article) error {
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		if a.ID == "" {
			return fmt.Errorf("article %q has no id", a.Title)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate article id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Title == "" {
			return fmt.Errorf("article %s has no title", a.ID)
		}
		if a.Answer == "" {
			return fmt.Errorf("article %s has no answer", a.ID)
		}
	}
	return nil
}

// matchesAny checks if relPath matches any of the given glob patterns,
// against either the full relative path or the base name.
func matchesAny(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
		if strings.EqualFold(pattern, relPath) {
			return true
		}
	}
	return false
}
