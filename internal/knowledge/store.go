package knowledge

// Store is an id-indexed, read-only view over the loaded article set.
// Cross-references between articles (RelatedArticles) are resolved through
// the store by id, never held as direct pointers.
type Store struct {
	articles []Article
	byID     map[string]int
}

// NewStore builds a Store from the given articles. Later duplicates of an id
// win, matching load order.
func NewStore(articles []Article) *Store {
	s := &Store{
		articles: articles,
		byID:     make(map[string]int, len(articles)),
	}
	for i, a := range articles {
		s.byID[a.ID] = i
	}
	return s
}

// Get returns the article with the given id, or nil if it does not exist.
func (s *Store) Get(id string) *Article {
	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &s.articles[i]
}

// All returns every article in load order. The returned slice must not be
// modified.
func (s *Store) All() []Article {
	return s.articles
}

// Count returns the number of articles in the store.
func (s *Store) Count() int {
	return len(s.articles)
}

// Related resolves an article's related_articles ids, skipping dangling
// references.
func (s *Store) Related(id string) []Article {
	a := s.Get(id)
	if a == nil {
		return nil
	}
	var related []Article
	for _, rid := range a.RelatedArticles {
		if r := s.Get(rid); r != nil {
			related = append(related, *r)
		}
	}
	return related
}
