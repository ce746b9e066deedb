package chi

import (
	"time"

	"github.com/spacebio/pubdex/internal/domain/article"
	"github.com/spacebio/pubdex/internal/domain/search/result"
	repo "github.com/spacebio/pubdex/internal/repository/articles"
	searchuc "github.com/spacebio/pubdex/internal/usecase/search"
)

// SearchRequest is the body of POST /search/semantic and /search/advanced.
type SearchRequest struct {
	Query               string         `json:"query"`
	Filters             *FilterRequest `json:"filters,omitempty"`
	SortBy              string         `json:"sort_by,omitempty"`
	Limit               int            `json:"limit,omitempty"`
	SimilarityThreshold float64        `json:"similarity_threshold,omitempty"`
}

// FilterRequest is the predicate block of a search request.
type FilterRequest struct {
	Topics       []int    `json:"topics,omitempty"`
	Years        []int    `json:"years,omitempty"`
	MinWordCount *int     `json:"min_word_count,omitempty"`
	MaxWordCount *int     `json:"max_word_count,omitempty"`
	ArticleTypes []string `json:"article_types,omitempty"`
	Journals     []string `json:"journals,omitempty"`
}

// ArticleResponse is a corpus row, optionally carrying a similarity score and
// matched-term explanation when it came from a scored path.
type ArticleResponse struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Link            string   `json:"link,omitempty"`
	Text            string   `json:"text,omitempty"`
	CleanText       string   `json:"clean_text,omitempty"`
	WordCount       int      `json:"word_count"`
	Topic           int      `json:"topic"`
	Year            *int     `json:"year,omitempty"`
	Journal         string   `json:"journal,omitempty"`
	ArticleType     string   `json:"article_type,omitempty"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	MatchedTerms    []string `json:"matched_terms,omitempty"`
}

// SearchResponse is a ranked search page.
type SearchResponse struct {
	Articles     []ArticleResponse `json:"articles"`
	TotalCount   int               `json:"total_count"`
	Query        string            `json:"query"`
	SearchTimeMS float64           `json:"search_time_ms"`
	Message      string            `json:"message,omitempty"`
}

// SimilarResponse lists articles related to a reference article.
type SimilarResponse struct {
	ArticleID int               `json:"article_id"`
	Articles  []ArticleResponse `json:"similar_articles"`
	Count     int               `json:"count"`
}

// SuggestionsResponse holds autocomplete snippets.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
	Query       string   `json:"query"`
}

// TopicFacet is one topic with its article count.
type TopicFacet struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// YearFacet is one publication year with its article count.
type YearFacet struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// JournalFacet is one journal with its article count.
type JournalFacet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// KeywordFacet is one trending keyword with its frequency.
type KeywordFacet struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// FiltersResponse enumerates available facet values.
type FiltersResponse struct {
	Topics   []TopicFacet   `json:"topics"`
	Years    []YearFacet    `json:"years"`
	Journals []JournalFacet `json:"journals"`
}

// TrendingResponse lists trending topics and keywords.
type TrendingResponse struct {
	Topics   []TopicFacet   `json:"trending_topics"`
	Keywords []KeywordFacet `json:"trending_keywords"`
}

// HistoryEntryResponse is one recorded search.
type HistoryEntryResponse struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	ElapsedMS   float64   `json:"elapsed_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryResponse is the recent-search page.
type HistoryResponse struct {
	Searches []HistoryEntryResponse `json:"searches"`
	Count    int                    `json:"count"`
}

// PopularQuery is one popular-query entry.
type PopularQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// AnalyticsResponse aggregates the in-memory search history.
type AnalyticsResponse struct {
	TotalSearches     int            `json:"total_searches"`
	UniqueQueries     int            `json:"unique_queries"`
	AverageResults    float64        `json:"average_results"`
	AverageResponseMS float64        `json:"average_response_ms"`
	PopularQueries    []PopularQuery `json:"popular_queries"`
}

// SaveSearchRequest records a query without executing it.
type SaveSearchRequest struct {
	Query string `json:"query"`
}

// CorpusListResponse is a page of corpus rows.
type CorpusListResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	TotalCount int               `json:"total_count"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// SubmissionRequest is the body of POST/PUT /articles.
type SubmissionRequest struct {
	Title       string `json:"title"`
	Abstract    string `json:"abstract,omitempty"`
	Journal     string `json:"journal,omitempty"`
	ArticleType string `json:"article_type,omitempty"`
	DOI         string `json:"doi,omitempty"`
	PMCID       string `json:"pmc_id,omitempty"`
	Year        *int   `json:"year,omitempty"`
}

// SubmissionResponse is a stored user-submitted article.
type SubmissionResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Abstract    string    `json:"abstract,omitempty"`
	Journal     string    `json:"journal,omitempty"`
	ArticleType string    `json:"article_type"`
	DOI         string    `json:"doi,omitempty"`
	PMCID       string    `json:"pmc_id,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubmissionListResponse is a page of stored submissions.
type SubmissionListResponse struct {
	Articles []SubmissionResponse `json:"articles"`
	Count    int                  `json:"count"`
}

// SubmissionStatsResponse aggregates the submission store.
type SubmissionStatsResponse struct {
	TotalArticles    int            `json:"total_articles"`
	WithAbstract     int            `json:"with_abstract"`
	WithDOI          int            `json:"with_doi"`
	WithPMCID        int            `json:"with_pmc_id"`
	ArticleTypes     map[string]int `json:"article_types"`
	Journals         map[string]int `json:"journals"`
	PublicationYears map[string]int `json:"publication_years"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func articleToResponse(a *article.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID(),
		Title:       a.Title(),
		Link:        a.Link(),
		Text:        a.Text(),
		CleanText:   a.CleanText(),
		WordCount:   a.WordCount(),
		Topic:       a.Topic(),
		Year:        a.Year(),
		Journal:     a.Journal(),
		ArticleType: a.ArticleType(),
	}
}

func resultToResponse(r *result.Result) ArticleResponse {
	resp := articleToResponse(r.Article())
	if r.Scored() {
		score := r.Score()
		resp.SimilarityScore = &score
		resp.MatchedTerms = r.MatchedTerms()
	}
	return resp
}

func searchToResponse(page searchuc.Response) SearchResponse {
	articles := make([]ArticleResponse, len(page.Results))
	for i := range page.Results {
		articles[i] = resultToResponse(&page.Results[i])
	}
	return SearchResponse{
		Articles:     articles,
		TotalCount:   page.TotalCount,
		Query:        page.Query,
		SearchTimeMS: page.ElapsedMS,
		Message:      page.Message,
	}
}

func catalogToResponse(c searchuc.FilterCatalog) FiltersResponse {
	resp := FiltersResponse{
		Topics:   make([]TopicFacet, len(c.Topics)),
		Years:    make([]YearFacet, len(c.Years)),
		Journals: make([]JournalFacet, len(c.Journals)),
	}
	for i, t := range c.Topics {
		resp.Topics[i] = TopicFacet{ID: t.ID, Name: t.Name, Count: t.Count}
	}
	for i, y := range c.Years {
		resp.Years[i] = YearFacet{Year: y.Year, Count: y.Count}
	}
	for i, j := range c.Journals {
		resp.Journals[i] = JournalFacet{Name: j.Name, Count: j.Count}
	}
	return resp
}

func trendingToResponse(t searchuc.Trending) TrendingResponse {
	resp := TrendingResponse{
		Topics:   make([]TopicFacet, len(t.Topics)),
		Keywords: make([]KeywordFacet, len(t.Keywords)),
	}
	for i, tc := range t.Topics {
		resp.Topics[i] = TopicFacet{ID: tc.ID, Name: tc.Name, Count: tc.Count}
	}
	for i, k := range t.Keywords {
		resp.Keywords[i] = KeywordFacet{Keyword: k.Keyword, Count: k.Count}
	}
	return resp
}

func analyticsToResponse(a searchuc.Analytics) AnalyticsResponse {
	popular := make([]PopularQuery, len(a.PopularQueries))
	for i, q := range a.PopularQueries {
		popular[i] = PopularQuery{Query: q.Query, Count: q.Count}
	}
	return AnalyticsResponse{
		TotalSearches:     a.TotalSearches,
		UniqueQueries:     a.UniqueQueries,
		AverageResults:    a.AverageResults,
		AverageResponseMS: a.AverageResponseMS,
		PopularQueries:    popular,
	}
}

func submissionToResponse(rec repo.Record) SubmissionResponse {
	return SubmissionResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Abstract:    rec.Abstract,
		Journal:     rec.Journal,
		ArticleType: rec.ArticleType,
		DOI:         rec.DOI,
		PMCID:       rec.PMCID,
		Year:        rec.Year,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func statsToResponse(s repo.Stats) SubmissionStatsResponse {
	return SubmissionStatsResponse{
		TotalArticles:    s.TotalArticles,
		WithAbstract:     s.WithAbstract,
		WithDOI:          s.WithDOI,
		WithPMCID:        s.WithPMCID,
		ArticleTypes:     s.ArticleTypes,
		Journals:         s.Journals,
		PublicationYears: s.PublicationYears,
	}
}
