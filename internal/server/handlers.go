package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/foundation/utils/timex"
	"github.com/msto63/numerik/internal/calc"
	"github.com/msto63/numerik/internal/journal"
	"github.com/msto63/numerik/pkg/core/health"
)

// EvalRequest is the body of POST /v1/eval
type EvalRequest struct {
	Expression string `json:"expression" validate:"required,max=4096"`
}

// RunRequest is the body of POST /v1/run
type RunRequest struct {
	Program string `json:"program" validate:"required,max=65536"`
}

// EncodeResponse is returned by POST /v1/codec/encode
type EncodeResponse struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}

// DecodeResponse is returned by POST /v1/codec/decode
type DecodeResponse struct {
	Selection []string `json:"selection"`
}

// ErrorResponse wraps a structured error
type ErrorResponse struct {
	Error *mdwerror.Error `json:"error"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if !s.decode(w, r, "eval", &req) {
		return
	}
	result, err := s.svc.Evaluate(r.Context(), req.Expression)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResult("eval", result.Valid)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req calc.ReduceRequest
	if !s.decode(w, r, "reduce", &req) {
		return
	}
	result, err := s.svc.Reduce(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResult(req.Op, result.Valid)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDivide(w http.ResponseWriter, r *http.Request) {
	var req calc.DivideRequest
	if !s.decode(w, r, "divide", &req) {
		return
	}
	result, err := s.svc.Divide(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResult("divide", result.Valid)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req calc.FormatRequest
	if !s.decode(w, r, "format", &req) {
		return
	}
	out, err := s.svc.Format(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"formatted": out})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !s.decode(w, r, "run", &req) {
		return
	}
	result, err := s.svc.RunText(r.Context(), req.Program, "http")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.ID != "" {
		s.logger.WithRequestID(calc.RequestIDFromContext(r.Context())).Audit("run journaled",
			mdwlog.String("id", result.ID),
			mdwlog.String("value", result.Value),
			mdwlog.Int("steps", len(result.Log)))
	}
	s.metrics.ObserveResult("run", true)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req calc.CodecRequest
	if !s.decode(w, r, "encode", &req) {
		return
	}
	id, count, err := s.svc.Encode(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EncodeResponse{ID: id, Count: count})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req calc.CodecRequest
	if !s.decode(w, r, "decode", &req) {
		return
	}
	selection, err := s.svc.Decode(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DecodeResponse{Selection: selection})
}

// journalQuery holds the query parameters of GET /v1/journal
type journalQuery struct {
	Source string `validate:"omitempty,oneof=cli http repl api"`
	Since  string
	Limit  int `validate:"gte=0,lte=1000"`
	Offset int `validate:"gte=0"`
}

func (s *Server) handleJournalList(w http.ResponseWriter, r *http.Request) {
	store := s.svc.Journal()
	if store == nil {
		s.writeError(w, r, journalDisabled())
		return
	}

	q := r.URL.Query()
	query := journalQuery{Source: q.Get("source"), Since: q.Get("since"), Limit: 50}
	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				s.writeError(w, r, mdwerrors.CalcInvalidRequest("journal", name+" is not a number", err))
				return
			}
			*target = n
		}
	}
	if err := s.validate.Struct(query); err != nil {
		s.writeError(w, r, validationError("journal", err))
		return
	}

	opts := journal.ListOptions{Source: query.Source, Limit: query.Limit, Offset: query.Offset}
	if query.Since != "" {
		since, err := timex.ParseSince(query.Since, time.Now())
		if err != nil {
			s.writeError(w, r, mdwerrors.CalcInvalidRequest("journal", "since must be a timestamp or a duration", err))
			return
		}
		opts.Since = since
	}

	entries, err := store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleJournalGet(w http.ResponseWriter, r *http.Request) {
	store := s.svc.Journal()
	if store == nil {
		s.writeError(w, r, journalDisabled())
		return
	}
	entry, err := store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	report := s.health.Check(ctx)
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func journalDisabled() error {
	return mdwerrors.NewErrorBuilder(mdwerrors.ModuleServer).
		Operation("journal").
		Code(string(mdwerror.CodeServiceUnavailable)).
		Message("journal is disabled").
		Build()
}

// decode reads a JSON body into v and validates it. Numbers stay
// json.Number so operands keep their exact decimal text.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, mdwerrors.CalcInvalidRequest(op, "malformed JSON body", err))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeError(w, r, validationError(op, err))
		return false
	}
	return true
}

func validationError(op string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fe.Field() + " failed " + fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return mdwerrors.CalcInvalidRequest(op, reason, nil)
	}
	return mdwerrors.CalcInvalidRequest(op, err.Error(), nil)
}

// writeError maps err onto an HTTP status through its error class
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := calc.RequestIDFromContext(r.Context())
	e, ok := mdwerror.As(err)
	switch {
	case ok:
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		e = mdwerror.Wrap(err, "request deadline exceeded").WithCode(mdwerror.CodeTimeout)
	default:
		e = mdwerror.Wrap(err, "request failed").WithCode(mdwerror.CodeInternal)
	}
	e = e.WithRequestID(requestID)

	status := mdwerrors.Classify(e).HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.logger.WithRequestID(requestID).LogError(e)
	}
	writeJSON(w, status, ErrorResponse{Error: e})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
