package selection

import (
	"context"
	"fmt"

	"github.com/danmuck/mediagate/internal/declare"
	"github.com/danmuck/mediagate/internal/observability"
	"github.com/danmuck/mediagate/internal/token"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Test is one discovered test method with its resolved declaration.
type Test struct {
	ID        string
	Effective declare.Effective
}

// Candidate is one content asset as offered by content provisioning.
type Candidate struct {
	ID       string    `json:"id"`
	Protocol string    `json:"protocol"`
	Fields   token.Set `json:"fields"`
}

// Decision is the result for one (test, candidate) pair.
type Decision struct {
	TestID      string `json:"test"`
	CandidateID string `json:"candidate"`
	Result      Result `json:"result"`
}

// Observer receives every decision the engine makes.
type Observer interface {
	Observe(d Decision)
}

type ObserverFunc func(d Decision)

func (f ObserverFunc) Observe(d Decision) { f(d) }

type Config struct {
	Workers int
}

func DefaultConfig() Config {
	return Config{Workers: 4}
}

// Engine wraps Evaluate with logging, metrics and matrix planning.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	cfg      Config
	logger   zerolog.Logger
	observer Observer
}

func NewEngine(cfg Config, logger zerolog.Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	return &Engine{
		cfg:      cfg,
		logger:   logger.With().Str("component", "selection").Logger(),
		observer: metricsObserver{},
	}
}

// SetObserver replaces the default prometheus observer. Call before use.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = metricsObserver{}
	}
	e.observer = o
}

func (e *Engine) Evaluate(test Test, candidate Candidate) Decision {
	result := Evaluate(test.Effective, candidate.Protocol, candidate.Fields)
	d := Decision{TestID: test.ID, CandidateID: candidate.ID, Result: result}
	e.observer.Observe(d)

	event := e.logger.Debug()
	if !result.Eligible {
		event = e.logger.Info()
	}
	event.
		Str("test", test.ID).
		Str("candidate", candidate.ID).
		Str("protocol", candidate.Protocol).
		Str("outcome", result.Outcome()).
		Str("detail", result.String()).
		Msg("selection")
	return d
}

// Plan evaluates every test against every candidate. Decisions are ordered
// by test, then candidate, in input order.
func (e *Engine) Plan(ctx context.Context, tests []Test, candidates []Candidate) ([]Decision, error) {
	out := make([]Decision, len(tests)*len(candidates))
	if len(out) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, test := range tests {
		i, test := i, test
		g.Go(func() error {
			for j, candidate := range candidates {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("selection plan aborted at %s: %w", test.ID, err)
				}
				out[i*len(candidates)+j] = e.Evaluate(test, candidate)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Info().
		Int("tests", len(tests)).
		Int("candidates", len(candidates)).
		Msg("selection plan complete")
	return out, nil
}

type metricsObserver struct{}

func (metricsObserver) Observe(d Decision) {
	observability.RecordSelection(d.Result.Outcome(), d.Result.Reason.Missing.Slice())
}
