package api

import (
	"net/http"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
)

// handleAddEvent handles POST /events.
func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.EventRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	ev, err := s.deps.AddEvent(r.Context(), req.Record())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// handlePopularity handles POST /popularity.
func (s *Server) handlePopularity(w http.ResponseWriter, r *http.Request) {
	const op = "api.popularity"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.PopularityRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.PredictPopularity(r.Context(), req.Record()))
}

// handleSuccess handles POST /success.
func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	const op = "api.success"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.EventRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.PredictSuccess(r.Context(), req.Record()))
}

// handleSuccessBatch handles POST /success/batch.
func (s *Server) handleSuccessBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.success_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.SuccessBatchRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	drafts := make([]model.EventRecord, len(req.Events))
	for i, ev := range req.Events {
		drafts[i] = ev.Record()
	}
	out, err := s.deps.PredictSuccessBatch(r.Context(), drafts)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
