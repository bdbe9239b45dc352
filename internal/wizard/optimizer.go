package wizard

import (
	"context"
	"sync/atomic"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/genconfig"
	"github.com/HartBrook/promptwizard/internal/history"
	"github.com/rs/zerolog"
)

// Generator sends an instruction to a model and returns its raw reply.
// gemini.Client implements it.
type Generator interface {
	GenerateContent(ctx context.Context, instruction string, cfg genconfig.Config) (string, error)
}

// ConfigSource provides the current generation config.
type ConfigSource interface {
	Current() genconfig.Config
}

// HistoryWriter records completed optimizations.
type HistoryWriter interface {
	Append(r history.Record) (history.Record, error)
}

// Outcome is a successful optimization.
type Outcome struct {
	Result       Result         `json:"result"`
	Completeness Completeness   `json:"completeness"`
	Record       history.Record `json:"record"`
}

// Optimizer runs optimizations one at a time.
type Optimizer struct {
	generator Generator
	configs   ConfigSource
	history   HistoryWriter
	markers   Markers
	vocab     Vocabulary
	logger    zerolog.Logger

	inFlight atomic.Bool
}

// OptimizerOption configures an Optimizer.
type OptimizerOption func(*Optimizer)

// WithTables sets the marker and vocabulary tables.
func WithTables(m Markers, v Vocabulary) OptimizerOption {
	return func(o *Optimizer) {
		o.markers = m
		o.vocab = v
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) OptimizerOption {
	return func(o *Optimizer) {
		o.logger = l
	}
}

// NewOptimizer creates an Optimizer using the Traditional Chinese tables.
func NewOptimizer(gen Generator, configs ConfigSource, hist HistoryWriter, opts ...OptimizerOption) *Optimizer {
	o := &Optimizer{
		generator: gen,
		configs:   configs,
		history:   hist,
		markers:   TraditionalChinese,
		vocab:     TraditionalChineseVocabulary,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// InFlight reports whether an optimization is running.
func (o *Optimizer) InFlight() bool {
	return o.inFlight.Load()
}

// Run performs one optimization. Blank text, unknown selectors and a missing
// key fail before any network call; a concurrent call fails with BUSY. A history write
// failure is logged and does not fail the run.
func (o *Optimizer) Run(ctx context.Context, req Request) (*Outcome, error) {
	req = req.withDefaults()
	if req.Text == "" {
		return nil, errors.PromptEmpty()
	}

	instruction, err := BuildInstruction(req)
	if err != nil {
		return nil, err
	}

	cfg := o.configs.Current()
	if !cfg.HasAPIKey() {
		return nil, errors.AuthMissing()
	}

	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, errors.Busy()
	}
	defer o.inFlight.Store(false)

	o.logger.Info().
		Str("category", req.Category).
		Str("target", req.Target).
		Str("model", cfg.Model).
		Msg("Optimizing prompt")

	reply, err := o.generator.GenerateContent(ctx, instruction, cfg)
	if err != nil {
		return nil, err
	}

	result := ParseResponse(reply, o.markers)
	completeness := CheckCompleteness(req.Text, result.Optimized, o.vocab)
	if !completeness.Complete {
		result.Tips = append([]string{o.vocab.WarningPrefix + completeness.Warning}, result.Tips...)
	}

	record := history.Record{
		Category:  req.Category,
		Original:  req.Text,
		Optimized: result.Optimized,
		Settings: history.Settings{
			Complexity: req.Complexity,
			TargetAI:   req.Target,
			Style:      req.Style,
			Language:   req.Language,
		},
	}
	if stored, err := o.history.Append(record); err != nil {
		o.logger.Warn().Err(err).Msg("Could not save to history")
	} else {
		record = stored
	}

	return &Outcome{
		Result:       result,
		Completeness: completeness,
		Record:       record,
	}, nil
}

// Task is an optimization running in the background.
type Task struct {
	done    chan struct{}
	outcome *Outcome
	err     error
}

// Submit starts Run on a goroutine.
func (o *Optimizer) Submit(ctx context.Context, req Request) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.outcome, t.err = o.Run(ctx, req)
	}()
	return t
}

// Done is closed when the task finishes.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its outcome or error.
func (t *Task) Wait() (*Outcome, error) {
	<-t.done
	return t.outcome, t.err
}
