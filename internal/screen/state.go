package screen

import (
	"github.com/samvad-hq/vernacular-news/internal/domain"
)

// State is everything the view renders. It is only replaced through Reduce.
type State struct {
	Articles     []domain.Article
	Language     string
	Category     domain.Category
	IsLoading    bool
	IsRefreshing bool
	IsDarkMode   bool
	// Generation identifies the newest pipeline invocation; older results are dropped.
	Generation uint64
	// LastError is for operators only; the view never renders it.
	LastError string
}

// clone returns a copy whose Articles slice is not shared with s.
func (s State) clone() State {
	s.Articles = copyArticles(s.Articles)
	return s
}

func copyArticles(in []domain.Article) []domain.Article {
	out := make([]domain.Article, len(in))
	copy(out, in)
	return out
}
