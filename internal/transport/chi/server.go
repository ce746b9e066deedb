// Package chi exposes the HTTP API: search, suggestions, catalog, analytics,
// corpus access, submission CRUD, and health.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spacebio/pubdex/internal/domain"
	"github.com/spacebio/pubdex/internal/domain/search/filter"
	"github.com/spacebio/pubdex/internal/domain/search/request"
	"github.com/spacebio/pubdex/internal/domain/search/sortkey"
	articlesuc "github.com/spacebio/pubdex/internal/usecase/articles"
	healthuc "github.com/spacebio/pubdex/internal/usecase/health"
	searchuc "github.com/spacebio/pubdex/internal/usecase/search"
)

const defaultCorpusPage = 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services into chi routes.
type Server struct {
	search        *searchuc.Service
	articles      *articlesuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. articles can be nil when the
// submission store is disabled.
func NewServer(
	search *searchuc.Service,
	articles *articlesuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		articles: articles,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMalformedFilter, http.StatusBadRequest, "malformed_filter"),
		sentinelHandler(domain.ErrInvalidSubmission, http.StatusBadRequest, "invalid_submission"),
		sentinelHandler(domain.ErrArticleNotFound, http.StatusNotFound, "article_not_found"),
		sentinelHandler(domain.ErrInvalidReference, http.StatusBadRequest, "invalid_reference"),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Post("/semantic", s.semanticSearch)
			r.Post("/advanced", s.advancedSearch)
			r.Get("/similar/{id}", s.similarArticles)
			r.Get("/suggestions", s.suggestions)
			r.Get("/filters", s.availableFilters)
			r.Get("/trending", s.trending)
			r.Get("/analytics", s.analytics)
			r.Get("/history", s.history)
			r.Post("/save", s.saveSearch)
		})
		r.Route("/corpus", func(r chi.Router) {
			r.Get("/articles", s.listCorpus)
			r.Get("/articles/{id}", s.getCorpusArticle)
		})
		if s.articles != nil {
			r.Route("/articles", func(r chi.Router) {
				r.Post("/", s.createSubmission)
				r.Get("/", s.listSubmissions)
				r.Get("/stats", s.submissionStats)
				r.Get("/{id}", s.getSubmission)
				r.Put("/{id}", s.updateSubmission)
				r.Delete("/{id}", s.deleteSubmission)
			})
		}
	})
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// semanticSearch handles POST /api/v1/search/semantic.
func (s *Server) semanticSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r, sortkey.Relevance)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(s.search.Semantic(r.Context(), req)))
}

// advancedSearch handles POST /api/v1/search/advanced.
func (s *Server) advancedSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r, "")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(s.search.Advanced(r.Context(), req)))
}

// decodeSearchRequest parses and validates a search body. forcedSort, when
// non-empty, overrides the body's sort key (the semantic path always ranks by
// relevance).
func (s *Server) decodeSearchRequest(
	w http.ResponseWriter, r *http.Request, forcedSort sortkey.Key,
) (*request.Search, bool) {
	var body SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return nil, false
	}

	filters, err := filtersFromRequest(body.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return nil, false
	}

	sortBy := sortkey.Key(body.SortBy)
	if forcedSort != "" {
		sortBy = forcedSort
	}

	req, err := request.NewSearch(body.Query, filters, sortBy, body.Limit, body.SimilarityThreshold)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return nil, false
	}
	return &req, true
}

// similarArticles handles GET /api/v1/search/similar/{id}.
func (s *Server) similarArticles(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "article id must be an integer")
		return
	}

	limit := queryInt(r, "limit", request.DefaultSimilarLimit)
	threshold := queryFloat(r, "threshold", request.DefaultSimilarThreshold)

	req, err := request.NewSimilar(id, limit, threshold)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := s.search.Similar(r.Context(), &req)
	articles := make([]ArticleResponse, len(results))
	for i := range results {
		articles[i] = resultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SimilarResponse{
		ArticleID: id,
		Articles:  articles,
		Count:     len(articles),
	})
}

// suggestions handles GET /api/v1/search/suggestions.
func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	limit := queryInt(r, "limit", searchuc.DefaultSuggestions)

	sug := s.search.Suggest(r.Context(), query, limit)
	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: sug.Suggestions,
		Query:       sug.Query,
	})
}

// availableFilters handles GET /api/v1/search/filters.
func (s *Server) availableFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogToResponse(s.search.AvailableFilters(r.Context())))
}

// trending handles GET /api/v1/search/trending.
func (s *Server) trending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	writeJSON(w, http.StatusOK, trendingToResponse(s.search.TrendingTopics(r.Context(), limit)))
}

// analytics handles GET /api/v1/search/analytics.
func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analyticsToResponse(s.search.History().Aggregate()))
}

// history handles GET /api/v1/search/history.
func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	entries := s.search.History().Recent(limit)

	searches := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		searches[i] = HistoryEntryResponse{
			Query:       e.Query,
			ResultCount: e.ResultCount,
			ElapsedMS:   e.ElapsedMS,
			Timestamp:   e.Timestamp,
		}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Searches: searches, Count: len(searches)})
}

// saveSearch handles POST /api/v1/search/save. It records a query into the
// history ring without executing it.
func (s *Server) saveSearch(w http.ResponseWriter, r *http.Request) {
	var body SaveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	s.search.History().Record(body.Query, 0, 0)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved", "query": body.Query})
}

// listCorpus handles GET /api/v1/corpus/articles.
func (s *Server) listCorpus(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultCorpusPage)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 {
		limit = defaultCorpusPage
	}
	if offset < 0 {
		offset = 0
	}

	rows, total := s.search.CorpusPage(limit, offset)
	articles := make([]ArticleResponse, len(rows))
	for i := range rows {
		articles[i] = articleToResponse(&rows[i])
	}
	writeJSON(w, http.StatusOK, CorpusListResponse{
		Articles:   articles,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	})
}

// getCorpusArticle handles GET /api/v1/corpus/articles/{id}.
func (s *Server) getCorpusArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "article id must be an integer")
		return
	}

	a, ok := s.search.CorpusArticle(id)
	if !ok {
		writeError(w, http.StatusNotFound, "article_not_found", "article not found")
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(a))
}

// createSubmission handles POST /api/v1/articles.
func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}

	rec, err := s.articles.Create(r.Context(), sub)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submissionToResponse(rec))
}

// listSubmissions handles GET /api/v1/articles.
func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", articlesuc.DefaultListLimit)
	offset := queryInt(r, "offset", 0)
	query := r.URL.Query().Get("q")

	recs, err := s.articles.List(r.Context(), query, limit, offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SubmissionResponse, len(recs))
	for i, rec := range recs {
		items[i] = submissionToResponse(rec)
	}
	writeJSON(w, http.StatusOK, SubmissionListResponse{Articles: items, Count: len(items)})
}

// submissionStats handles GET /api/v1/articles/stats.
func (s *Server) submissionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.articles.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// getSubmission handles GET /api/v1/articles/{id}.
func (s *Server) getSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := s.submissionID(w, r)
	if !ok {
		return
	}
	rec, err := s.articles.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionToResponse(rec))
}

// updateSubmission handles PUT /api/v1/articles/{id}.
func (s *Server) updateSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := s.submissionID(w, r)
	if !ok {
		return
	}
	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}

	rec, err := s.articles.Update(r.Context(), id, sub)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionToResponse(rec))
}

// deleteSubmission handles DELETE /api/v1/articles/{id}.
func (s *Server) deleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := s.submissionID(w, r)
	if !ok {
		return
	}
	if err := s.articles.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// healthCheck handles GET /health. A degraded index still answers 200 so load
// balancers keep routing; the body carries the per-component detail.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          string(report.Status),
		"checks":          checks,
		"version":         report.Version,
		"corpus_size":     report.CorpusSize,
		"vocabulary_size": report.VocabularySize,
	})
}

func (s *Server) submissionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "article id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) decodeSubmission(w http.ResponseWriter, r *http.Request) (articlesuc.Submission, bool) {
	var body SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return articlesuc.Submission{}, false
	}
	return articlesuc.Submission{
		Title:       body.Title,
		Abstract:    body.Abstract,
		Journal:     body.Journal,
		ArticleType: body.ArticleType,
		DOI:         body.DOI,
		PMCID:       body.PMCID,
		Year:        body.Year,
	}, true
}

func filtersFromRequest(f *FilterRequest) (filter.Set, error) {
	if f == nil {
		return filter.Set{}, nil
	}
	return filter.New(f.Topics, f.Years, f.MinWordCount, f.MaxWordCount, f.ArticleTypes, f.Journals)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMalformedFilter,
		domain.ErrInvalidSubmission,
		domain.ErrArticleNotFound,
		domain.ErrInvalidReference,
		domain.ErrDataUnavailable,
		domain.ErrVectorizationUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
