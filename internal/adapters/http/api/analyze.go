package api

import (
	"net/http"

	"github.com/okian/eventrank/internal/domain/types"
)

// handleAnalyze handles POST /analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.AnalyzeRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.AnalyzeRequest(r.Context(), req.Text))
}

// handleScoreDescription handles POST /descriptions/score.
func (s *Server) handleScoreDescription(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_description"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.DescriptionRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.ScoreDescription(r.Context(), req))
}
