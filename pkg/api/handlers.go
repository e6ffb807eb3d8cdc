package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/srgsearch/pkg/buildinfo"
	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/srg"
	"github.com/matzehuels/srgsearch/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	N             int     `json:"n"`
	K             int     `json:"k"`
	Lambda        int     `json:"lambda"`
	Mu            int     `json:"mu"`
	Preset        string  `json:"preset,omitempty"`
	SeedRows      [][]int `json:"seed_rows,omitempty"`
	RNGSeed       uint64  `json:"rng_seed,omitempty"`
	MaxIterations int64   `json:"max_iterations,omitempty"`
	TimeoutMS     int64   `json:"timeout_ms,omitempty"`
	NoStore       bool    `json:"no_store,omitempty"`
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	N      int     `json:"n"`
	K      int     `json:"k"`
	Lambda int     `json:"lambda"`
	Mu     int     `json:"mu"`
	Rows   [][]int `json:"rows"`
}

// CheckResponse is the result of POST /v1/check.
type CheckResponse struct {
	Valid      bool            `json:"valid"`
	Complete   bool            `json:"complete"`
	Gram       srg.GramMatrix  `json:"gram"`
	Violations []srg.Violation `json:"violations"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    srgerrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	spec, seeds, err := s.resolveSolve(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.solveOptions(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	key := store.SolutionKey(spec, seeds)
	if !req.NoStore {
		if doc := s.lookup(ctx, key); doc != nil {
			w.Header().Set("X-Store", "hit")
			writeJSON(w, http.StatusOK, doc)
			return
		}
	}

	res, err := srg.Solve(ctx, spec, seeds, opts)
	if err != nil {
		if res != nil {
			s.logger.Info("Search stopped", "spec", spec, "state", res.State, "rows", len(res.Rows), "iterations", res.Stats.Iterations)
		}
		s.writeError(w, srgerrors.FromSearch(err))
		return
	}

	doc := report.NewDocument(res)
	doc.Key = key
	if !req.NoStore {
		s.save(ctx, key, doc)
	}
	w.Header().Set("X-Store", "miss")
	writeJSON(w, http.StatusOK, doc)
}

// resolveSolve fills the parameters and seeds from the request or its preset.
func (s *Server) resolveSolve(req SolveRequest) (srg.Spec, srg.RowSet, error) {
	spec := srg.Spec{N: req.N, K: req.K, Lambda: req.Lambda, Mu: req.Mu}
	seedInts := req.SeedRows
	if req.Preset != "" {
		p, err := s.cfg.Preset(req.Preset)
		if err != nil {
			return srg.Spec{}, nil, err
		}
		spec = p.Spec()
		if seedInts == nil {
			seedInts = p.Seeds
		}
	}
	if err := spec.Validate(); err != nil {
		return srg.Spec{}, nil, srgerrors.FromSearch(err)
	}
	seeds, err := srg.RowSetFromInts(seedInts)
	if err != nil {
		return srg.Spec{}, nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "seed_rows")
	}
	if err := srg.ValidateRows(spec, seeds); err != nil {
		return srg.Spec{}, nil, srgerrors.FromSearch(err)
	}
	return spec, seeds, nil
}

// solveOptions applies the request budget, capped by the server limits.
func (s *Server) solveOptions(req SolveRequest) (srg.Options, error) {
	limits := s.cfg.Server
	if err := srgerrors.ValidateBudget(req.MaxIterations, limits.MaxIterations,
		req.TimeoutMS, limits.MaxTimeout.Milliseconds()); err != nil {
		return srg.Options{}, err
	}
	opts, err := s.cfg.Options()
	if err != nil {
		return srg.Options{}, err
	}
	opts.Seed = req.RNGSeed

	opts.MaxIterations = req.MaxIterations
	if opts.MaxIterations == 0 {
		opts.MaxIterations = limits.MaxIterations
	}
	opts.MaxDuration = time.Duration(req.TimeoutMS) * time.Millisecond
	if opts.MaxDuration == 0 {
		opts.MaxDuration = limits.MaxTimeout.Duration
	}
	return opts, nil
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	spec := srg.Spec{N: req.N, K: req.K, Lambda: req.Lambda, Mu: req.Mu}
	if err := spec.Validate(); err != nil {
		s.writeError(w, srgerrors.FromSearch(err))
		return
	}
	rows, err := srg.RowSetFromInts(req.Rows)
	if err != nil {
		s.writeError(w, srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "rows"))
		return
	}
	if len(rows) > spec.N {
		s.writeError(w, srgerrors.New(srgerrors.ErrCodeInvalidRow, "%d rows exceed n=%d", len(rows), spec.N))
		return
	}
	for i, row := range rows {
		if len(row) != spec.N {
			s.writeError(w, srgerrors.New(srgerrors.ErrCodeInvalidRow, "row %d has length %d, want %d", i, len(row), spec.N))
			return
		}
	}

	gram := srg.Evaluate(rows)
	violations := srg.Violations(spec, rows, gram)
	if violations == nil {
		violations = []srg.Violation{}
	}
	writeJSON(w, http.StatusOK, CheckResponse{
		Valid:      srg.ValidateRows(spec, rows) == nil,
		Complete:   len(rows) == spec.N,
		Gram:       gram,
		Violations: violations,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.AllPresets())
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := srgerrors.ValidateStoreKey(key); err != nil {
		s.writeError(w, err)
		return
	}
	data, hit, err := s.store.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, srgerrors.Wrap(srgerrors.ErrCodeStore, err, "read solution"))
		return
	}
	if !hit {
		s.writeError(w, srgerrors.New(srgerrors.ErrCodeNotFound, "no solution stored under %s", key))
		return
	}
	doc, err := report.Unmarshal(data)
	if err != nil {
		s.writeError(w, srgerrors.Wrap(srgerrors.ErrCodeInternal, err, "stored solution is corrupt"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// lookup returns a stored complete document, or nil.
func (s *Server) lookup(ctx context.Context, key string) *report.Document {
	data, hit, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Store read failed", "key", key, "error", err)
		return nil
	}
	if !hit {
		return nil
	}
	doc, err := report.Unmarshal(data)
	if err != nil || !doc.Complete() {
		return nil
	}
	return doc
}

func (s *Server) save(ctx context.Context, key string, doc *report.Document) {
	data, err := doc.Marshal()
	if err == nil {
		err = s.store.Set(ctx, key, data, s.cfg.Store.TTL.Duration)
	}
	if err != nil {
		s.logger.Warn("Store write failed", "key", key, "error", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code srgerrors.Code) int {
	switch code {
	case srgerrors.ErrCodeInvalidInput, srgerrors.ErrCodeInvalidRow,
		srgerrors.ErrCodeInvalidPreset, srgerrors.ErrCodeInvalidFormat,
		srgerrors.ErrCodeInvalidKey:
		return http.StatusBadRequest
	case srgerrors.ErrCodeSpecViolation, srgerrors.ErrCodeBudgetExceeded:
		return http.StatusUnprocessableEntity
	case srgerrors.ErrCodeNotFound, srgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case srgerrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := srgerrors.GetCode(err)
	if code == "" {
		code = srgerrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError && !errors.Is(err, context.Canceled) {
		s.logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: srgerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
