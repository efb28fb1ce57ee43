// Package api exposes the ranking engine over HTTP as thin JSON handlers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AnalyzeRequest(ctx context.Context, text string) model.RequestAnalysis
	Submit(ctx context.Context, req types.SubmitRequest) (types.SubmitResponse, error)
	Request(ctx context.Context, id string) (types.StoredRequest, error)
	ScoreDescription(ctx context.Context, req types.DescriptionRequest) model.QualityReport
	Search(ctx context.Context, req types.SearchRequest) ([]model.ScoredEvent, error)
	Recommend(ctx context.Context, userID string, limit int) ([]model.Recommendation, error)
	PredictPopularity(ctx context.Context, ev model.EventRecord) model.PopularityReport
	Trending(ctx context.Context, days int) ([]model.TrendEntry, error)
	PredictSuccess(ctx context.Context, ev model.EventRecord) model.SuccessReport
	PredictSuccessBatch(ctx context.Context, drafts []model.EventRecord) ([]model.SuccessReport, error)
	AddEvent(ctx context.Context, ev model.EventRecord) (model.EventRecord, error)
}

// Limits bounds the list sizes callers may ask for.
type Limits struct {
	DefaultSearch    int
	MaxSearch        int
	DefaultRecommend int
	MaxRecommend     int
	MaxTrendingDays  int
	MaxBodyBytes     int64
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		DefaultSearch:    10,
		MaxSearch:        100,
		DefaultRecommend: 5,
		MaxRecommend:     50,
		MaxTrendingDays:  365,
		MaxBodyBytes:     1 << 20,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLimits overrides the default list limits.
func WithLimits(l Limits) Option {
	return func(s *Server) {
		s.limits = l
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps   Dependencies
	limits Limits

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:          deps,
		limits:        DefaultLimits(),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.handleAnalyze, "analyze"))
	mux.HandleFunc("/requests", MetricsMiddleware(s.handleSubmit, "requests"))
	mux.HandleFunc("/requests/", MetricsMiddleware(s.handleGetRequest, "request"))
	mux.HandleFunc("/descriptions/score", MetricsMiddleware(s.handleScoreDescription, "descriptions"))
	mux.HandleFunc("/search", MetricsMiddleware(s.handleSearch, "search"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.handleRecommendations, "recommendations"))
	mux.HandleFunc("/popularity", MetricsMiddleware(s.handlePopularity, "popularity"))
	mux.HandleFunc("/trending", MetricsMiddleware(s.handleTrending, "trending"))
	mux.HandleFunc("/success", MetricsMiddleware(s.handleSuccess, "success"))
	mux.HandleFunc("/success/batch", MetricsMiddleware(s.handleSuccessBatch, "success_batch"))
	mux.HandleFunc("/events", MetricsMiddleware(s.handleAddEvent, "events"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure picks the status from the error kind.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// decodeBody reads a JSON body into v and checks its validate tags.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := types.Validate(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// intParam parses an optional positive integer query parameter within
// [1, max]. An absent parameter yields def.
func intParam(r *http.Request, name string, def, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, max)
	}
	return n, nil
}

// pathParam returns the single path segment after prefix.
func pathParam(r *http.Request, prefix string) (string, bool) {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return "", false
	}
	return p, true
}
