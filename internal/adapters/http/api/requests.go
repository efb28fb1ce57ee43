package api

import (
	"net/http"

	"github.com/okian/eventrank/internal/domain/types"
)

// handleSubmit handles POST /requests. Duplicates are acknowledged with 200,
// new submissions with 202, a full queue with 429.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_request"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.SubmitRequest
	if err := s.decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	ack, err := s.deps.Submit(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if ack.Duplicate {
		writeJSON(w, http.StatusOK, ack)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}

// handleGetRequest handles GET /requests/{id}.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_request"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/requests/")
	if !ok {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	req, err := s.deps.Request(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, req)
}
