package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/gridaxis/pkg/buildinfo"
	"github.com/matzehuels/gridaxis/pkg/errors"
	"github.com/matzehuels/gridaxis/pkg/observability"
	"github.com/matzehuels/gridaxis/pkg/pipeline"
	"github.com/matzehuels/gridaxis/pkg/problem"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProblem(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.runner.Bounds(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProblem(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sizes, err := parseSizes(r.URL.Query().Get("sizes"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Solve(r.Context(), p, pipeline.Options{
		Sizes:   sizes,
		Refresh: r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func decodeProblem(w http.ResponseWriter, r *http.Request) (*problem.Problem, error) {
	return problem.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), problem.FormatJSON)
}

// parseSizes reads "320,640". Empty input yields nil.
func parseSizes(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var sizes []int
	for _, f := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid size %q", f)
		}
		if err := errors.ValidateSize(n); err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	if err := errors.ValidateSizeCount(len(sizes)); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "request exceeded %s", s.timeout)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
	s.writeJSON(w, status, errorBody(r, code, msg))
}

func errorBody(r *http.Request, code, msg string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: msg, RequestID: RequestID(r.Context())}}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}
