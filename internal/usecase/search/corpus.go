package search

import "github.com/spacebio/pubdex/internal/domain/article"

// CorpusPage returns a page of corpus rows in ordinal order plus the total
// corpus size. A missing index yields an empty page.
func (s *Service) CorpusPage(limit, offset int) ([]article.Article, int) {
	snap, err := s.idx.Snapshot()
	if err != nil {
		return []article.Article{}, 0
	}

	all := snap.Articles()
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all)
}

// CorpusArticle returns the corpus row with the given ordinal id.
func (s *Service) CorpusArticle(id int) (*article.Article, bool) {
	snap, err := s.idx.Snapshot()
	if err != nil {
		return nil, false
	}
	return snap.Article(id)
}
