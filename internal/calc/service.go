// Package calc is the calculation service shared by the CLI, the HTTP API and
// the REPL. It owns the engine defaults, memoizes expression evaluation and
// journals accumulator runs.
package calc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msto63/numerik/foundation/core/config"
	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/foundation/utils/combx"
	"github.com/msto63/numerik/foundation/utils/mathx"
	"github.com/msto63/numerik/internal/journal"
	"github.com/msto63/numerik/pkg/core/cache"
)

// Result is a calculation outcome. Valid is false for the unparseable
// outcome, in which case every rendering is empty.
type Result struct {
	Valid       bool   `json:"valid"`
	Value       string `json:"value"`
	Stringified string `json:"stringified"`
	Dressed     string `json:"dressed"`
}

func newResult(n decimal.NullDecimal) Result {
	if !n.Valid {
		return Result{}
	}
	src := mathx.N(n)
	return Result{
		Valid:       true,
		Value:       mathx.Plain(src),
		Stringified: mathx.Stringify(src),
		Dressed:     mathx.Dress2DP(src),
	}
}

// Options carry the collaborators of a Service. All are optional: a nil
// Logger discards, a nil Journal disables persistence and a nil Cache is
// replaced by one sized from the settings.
type Options struct {
	Logger  *mdwlog.Logger
	Journal journal.Store
	Cache   *cache.Cache[string, Result]
}

// Service is safe for concurrent use
type Service struct {
	mu       sync.RWMutex
	settings Settings
	engine   engine

	logger    *mdwlog.Logger
	journal   journal.Store
	cache     *cache.Cache[string, Result]
	ownsCache bool
}

// New validates settings and builds a Service
func New(settings Settings, opts Options) (*Service, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	eng, err := settings.Engine.parse()
	if err != nil {
		return nil, err
	}

	s := &Service{
		settings: settings,
		engine:   eng,
		logger:   opts.Logger,
		journal:  opts.Journal,
		cache:    opts.Cache,
	}
	if s.logger == nil {
		s.logger = mdwlog.Discard()
	}
	s.logger = s.logger.WithName("calc")
	if s.cache == nil {
		s.cache = cache.New[string, Result](cache.Config{
			MaxItems:        settings.Server.CacheSize,
			TTL:             settings.Server.CacheTTL,
			CleanupInterval: time.Minute,
		})
		s.ownsCache = true
	}
	return s, nil
}

// Close stops the cache the service created itself. The journal belongs to
// the caller.
func (s *Service) Close() {
	if s.ownsCache {
		s.cache.Stop()
	}
}

// Settings returns the active settings
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Service) currentEngine() engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// UpdateSettings validates and installs new settings. Engine defaults apply
// to the next call; cache and journal settings need a restart.
func (s *Service) UpdateSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	eng, err := settings.Engine.parse()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = settings
	s.engine = eng
	s.mu.Unlock()

	s.logger.Info("settings updated", mdwlog.Fields{
		"scale":         eng.scale,
		"rounding_mode": eng.mode.String(),
		"policy":        eng.policy.String(),
	})
	return nil
}

// ApplyConfig loads settings from cfg and installs them; it is meant as the
// config change handler
func (s *Service) ApplyConfig(cfg *config.Config) error {
	settings, err := LoadSettings(cfg)
	if err != nil {
		s.logger.WarnWithErr("config change rejected", err)
		return err
	}
	return s.UpdateSettings(settings)
}

// Evaluate runs the expression interpreter. Results are cached by the
// trimmed expression text; an unparseable expression is a valid call with
// Result.Valid == false. When ctx ends first the call returns a TIMEOUT error
// and nothing is cached.
func (s *Service) Evaluate(ctx context.Context, expr string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	key := strings.TrimSpace(expr)
	return s.cache.GetOrSet(key, func() (Result, error) {
		done := make(chan decimal.NullDecimal, 1)
		go func() { done <- mathx.Evaluate(key) }()

		select {
		case n := <-done:
			result := newResult(n)
			s.logger.Debug("expression evaluated", mdwlog.Fields{"expression": key, "valid": result.Valid})
			return result, nil
		case <-ctx.Done():
			s.logger.Warn("expression evaluation abandoned", mdwlog.Int("length", len(key)))
			return Result{}, mdwerror.Wrap(ctx.Err(), "expression evaluation abandoned").
				WithCode(mdwerror.CodeTimeout).
				WithOperation("calc.evaluate")
		}
	})
}

// ReduceRequest is an n-ary reduction
type ReduceRequest struct {
	Op       string `json:"op" validate:"required,oneof=sum product depercent blend"`
	Policy   string `json:"policy,omitempty" validate:"omitempty,oneof=wrap_zero reserve_null notice_null"`
	Operands []any  `json:"operands"`
}

// Reduce applies a sum, product, depercent product or blend sum under the
// requested policy, or the configured one when none is given
func (s *Service) Reduce(ctx context.Context, req ReduceRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	policy, err := s.policy(req.Policy)
	if err != nil {
		return Result{}, mdwerrors.CalcInvalidRequest("reduce", "unknown policy", err)
	}
	operands, err := sources(req.Operands)
	if err != nil {
		return Result{}, mdwerrors.CalcInvalidRequest("reduce", "unsupported operand", err)
	}

	var out decimal.NullDecimal
	switch strings.ToLower(req.Op) {
	case "sum":
		out = mathx.SumWith(policy, operands...)
	case "product":
		out = mathx.ProductWith(policy, operands...)
	case "depercent":
		out = mathx.ProductDepercentWith(policy, operands...)
	case "blend":
		out = mathx.BlendSumWith(policy, operands...)
	default:
		return Result{}, mdwerrors.CalcInvalidRequest("reduce", fmt.Sprintf("unknown op %q", req.Op), nil)
	}
	return newResult(out), nil
}

// DivideRequest is a quotient, percent quotient or remainder. Scale and
// Mode fall back to the engine defaults.
type DivideRequest struct {
	Dividend any    `json:"dividend"`
	Divisor  any    `json:"divisor"`
	Scale    *int32 `json:"scale,omitempty" validate:"omitempty,gte=0,lte=64"`
	Mode     string `json:"mode,omitempty"`
	Policy   string `json:"policy,omitempty" validate:"omitempty,oneof=wrap_zero reserve_null notice_null"`
	Percent  bool   `json:"percent,omitempty"`
	Mod      bool   `json:"mod,omitempty"`
}

// Divide computes the quotient (or remainder when Mod is set)
func (s *Service) Divide(ctx context.Context, req DivideRequest) (result Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	eng := s.currentEngine()
	policy, err := s.policy(req.Policy)
	if err != nil {
		return Result{}, mdwerrors.CalcInvalidRequest("divide", "unknown policy", err)
	}
	scale, mode := eng.scale, eng.mode
	if req.Scale != nil {
		scale = *req.Scale
	}
	if req.Mode != "" {
		if mode, err = mathx.ParseRoundingMode(req.Mode); err != nil {
			return Result{}, mdwerrors.CalcInvalidRequest("divide", "unknown rounding mode", err)
		}
	}
	dividend, err := mathx.TryOf(req.Dividend)
	if err != nil {
		return Result{}, mdwerrors.CalcInvalidRequest("divide", "unsupported dividend", err)
	}
	divisor, err := mathx.TryOf(req.Divisor)
	if err != nil {
		return Result{}, mdwerrors.CalcInvalidRequest("divide", "unsupported divisor", err)
	}

	defer recoverEngine(&err)
	switch {
	case req.Mod:
		return newResult(mathx.ModWith(policy, dividend, divisor)), nil
	case req.Percent:
		return newResult(mathx.QuotientPercentWith(policy, dividend, divisor, scale, mode)), nil
	default:
		return newResult(mathx.QuotientWith(policy, dividend, divisor, scale, mode)), nil
	}
}

// maxPercentPlaces matches the engine.percent_places bound
const maxPercentPlaces = 16

// FormatRequest renders a value in one of the supported styles
type FormatRequest struct {
	Value   any    `json:"value"`
	Style   string `json:"style" validate:"required,oneof=plain stringify dress dress2dp percent pattern"`
	Pattern string `json:"pattern,omitempty" validate:"required_if=Style pattern"`
	// Places applies to percent; nil uses the configured percent places
	Places *int `json:"places,omitempty" validate:"omitempty,gte=-16,lte=16"`
	// W0 renders an unparseable value as zero instead of ""
	W0 bool `json:"w0,omitempty"`
}

// Format renders req.Value
func (s *Service) Format(ctx context.Context, req FormatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := mathx.TryOf(req.Value)
	if err != nil {
		return "", mdwerrors.CalcInvalidRequest("format", "unsupported value", err)
	}
	if req.W0 {
		src = mathx.D(mathx.WrapZero(src))
	}

	switch strings.ToLower(req.Style) {
	case "plain":
		return mathx.Plain(src), nil
	case "stringify", "":
		return mathx.Stringify(src), nil
	case "dress":
		return mathx.Dress(src), nil
	case "dress2dp":
		return mathx.Dress2DP(src), nil
	case "percent":
		places := req.Places
		if places != nil && (*places < -maxPercentPlaces || *places > maxPercentPlaces) {
			return "", mdwerrors.CalcInvalidRequest("format",
				fmt.Sprintf("places %d outside [-%d, %d]", *places, maxPercentPlaces, maxPercentPlaces), nil)
		}
		if places == nil {
			places = mathx.Places(s.currentEngine().percentPlaces)
		}
		return mathx.Percent(src, places), nil
	case "pattern":
		out, err := mathx.Format(src, req.Pattern)
		if err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", mdwerrors.CalcInvalidRequest("format", fmt.Sprintf("unknown style %q", req.Style), nil)
	}
}

// RunResult is the outcome of an accumulator program
type RunResult struct {
	ID           string   `json:"id,omitempty"`
	Value        string   `json:"value"`
	Stringified  string   `json:"stringified"`
	Dressed      string   `json:"dressed"`
	Scale        int32    `json:"scale"`
	RoundingMode string   `json:"rounding_mode"`
	Log          []string `json:"log"`
}

// RunText parses and runs an accumulator program
func (s *Service) RunText(ctx context.Context, text, origin string) (RunResult, error) {
	program, err := ParseProgram(text)
	if err != nil {
		return RunResult{}, err
	}
	program.Origin = origin
	return s.Run(ctx, program)
}

// Preview executes program like Run without journaling it
func (s *Service) Preview(ctx context.Context, program Program) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	return s.execute(ctx, program)
}

// Run executes program on a fresh accumulator with the configured scale and
// rounding mode. When a journal is attached the run is saved and its id
// returned; a journal failure is logged and does not fail the run.
func (s *Service) Run(ctx context.Context, program Program) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	result, err := s.execute(ctx, program)
	if err != nil || s.journal == nil {
		return result, err
	}

	origin := program.Origin
	if origin == "" {
		origin = "api"
	}
	entry := &journal.Entry{
		Source:       origin,
		RequestID:    RequestIDFromContext(ctx),
		Program:      program.String(),
		Value:        result.Value,
		Scale:        result.Scale,
		RoundingMode: result.RoundingMode,
		Log:          result.Log,
	}
	if err := s.journal.Save(ctx, entry); err != nil {
		s.logger.WithRequestID(entry.RequestID).ErrorWithErr("journal save failed", err)
		return result, nil
	}
	result.ID = entry.ID
	return result, nil
}

func (s *Service) execute(ctx context.Context, program Program) (RunResult, error) {
	if len(program.Instructions) == 0 {
		return RunResult{}, mdwerrors.CalcInvalidProgram(0, "", "program is empty")
	}

	eng := s.currentEngine()
	logger := s.logger
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.WithRequestID(id)
	}
	timer := logger.StartTimer("run").WithField("instructions", len(program.Instructions))

	acc := mathx.NewAccumulatorWith(eng.scale, eng.mode)
	if err := runSafely(program, acc); err != nil {
		timer.StopWithError(err)
		return RunResult{}, err
	}
	timer.Stop()

	return RunResult{
		Value:        acc.String(),
		Stringified:  acc.Stringify(),
		Dressed:      acc.Dress2DP(),
		Scale:        acc.Scale(),
		RoundingMode: acc.RoundingMode().String(),
		Log:          acc.LogLines(),
	}, nil
}

func runSafely(program Program, acc *mathx.Accumulator) (err error) {
	defer recoverEngine(&err)
	program.execute(acc)
	return nil
}

// recoverEngine turns an engine contract violation (a panic carrying an
// *mdwerror.Error, such as MATHX_ROUNDING_NECESSARY) into a returned error
func recoverEngine(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*mdwerror.Error); ok {
		*err = e
		return
	}
	panic(r)
}

// CodecRequest describes a combinatorial codec over string options
type CodecRequest struct {
	Dimensions [][]string `json:"dimensions" validate:"required,min=1,dive,min=1"`
	// Selection is used by Encode; "" skips a dimension
	Selection []string `json:"selection,omitempty"`
	// ID is used by Decode
	ID         int  `json:"id,omitempty"`
	IgnoreCase bool `json:"ignore_case,omitempty"`
}

func (req CodecRequest) manager() (*combx.Manager, error) {
	dims := make([][]any, len(req.Dimensions))
	for i, options := range req.Dimensions {
		dims[i] = make([]any, len(options))
		for j, option := range options {
			dims[i][j] = option
		}
	}
	m, err := combx.NewManager(dims...)
	if err != nil {
		return nil, err
	}
	if req.IgnoreCase {
		for i := range dims {
			if err := combx.PushComparator(m, i, strings.EqualFold); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Encode returns the identifier of req.Selection and the identifier count
func (s *Service) Encode(ctx context.Context, req CodecRequest) (id, count int, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	m, err := req.manager()
	if err != nil {
		return 0, 0, err
	}
	selection := make([]any, len(req.Selection))
	for i, component := range req.Selection {
		if component != "" {
			selection[i] = component
		}
	}
	id, err = m.Encode(selection...)
	if err != nil {
		return 0, 0, err
	}
	return id, m.Count(), nil
}

// Decode returns the selection identified by req.ID
func (s *Service) Decode(ctx context.Context, req CodecRequest) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := req.manager()
	if err != nil {
		return nil, err
	}
	selection, err := m.Decode(req.ID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(selection))
	for i, option := range selection {
		out[i] = option.(string)
	}
	return out, nil
}

// Journal returns the attached journal store, nil when journaling is off
func (s *Service) Journal() journal.Store { return s.journal }

// CacheStats reports evaluation cache effectiveness
func (s *Service) CacheStats() (hits, misses int64, hitRate float64) {
	return s.cache.Stats()
}

func (s *Service) policy(name string) (mathx.Policy, error) {
	if name == "" {
		return s.currentEngine().policy, nil
	}
	return mathx.ParsePolicy(name)
}

func sources(values []any) ([]mathx.Source, error) {
	out := make([]mathx.Source, len(values))
	for i, v := range values {
		src, err := mathx.TryOf(v)
		if err != nil {
			return nil, err
		}
		out[i] = src
	}
	return out, nil
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id that Run records in the journal
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id attached to ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
