package api

import (
	"net/http"
	"strings"

	"github.com/okian/eventrank/internal/domain/types"
)

// handleSearch handles GET /search?q=&limit=&category=&date_from=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := intParam(r, "limit", s.limits.DefaultSearch, s.limits.MaxSearch)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	q := r.URL.Query()
	req := types.SearchRequest{
		Query:    strings.TrimSpace(q.Get("q")),
		Limit:    limit,
		Category: strings.TrimSpace(q.Get("category")),
		DateFrom: strings.TrimSpace(q.Get("date_from")),
	}
	if err := types.Validate(req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := s.deps.Search(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRecommendations handles GET /recommendations/{user_id}?limit=.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := pathParam(r, "/recommendations/")
	if !ok {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	limit, err := intParam(r, "limit", s.limits.DefaultRecommend, s.limits.MaxRecommend)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	recs, err := s.deps.Recommend(r.Context(), userID, limit)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleTrending handles GET /trending?days=.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	const op = "api.trending"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	days, err := intParam(r, "days", 0, s.limits.MaxTrendingDays)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	trend, err := s.deps.Trending(r.Context(), days)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, trend)
}
