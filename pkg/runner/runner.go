/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/roadsight/roadsync/pkg/config"
	"github.com/roadsight/roadsync/pkg/journal"
	"github.com/roadsight/roadsync/pkg/roads"
	"github.com/roadsight/roadsync/pkg/route"
)

// State holds the per-run counters. It is the only mutable state a run
// carries and is updated once per row.
type State struct {
	Attempted int `json:"attempted" yaml:"attempted"`
	Created   int `json:"created" yaml:"created"`
	Rejected  int `json:"rejected" yaml:"rejected"`
	Failed    int `json:"failed" yaml:"failed"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

// RowSource delivers raw CSV rows in file order. A non-EOF error from Next
// may carry a Row whose Line locates the unreadable record.
type RowSource interface {
	Header() []string
	Next() (route.Row, error)
}

// Runner processes one input file against the external API.
type Runner struct {
	cfg     *config.Config
	creator roads.Creator
	journal *journal.Journal
	limiter *rate.Limiter
	logger  *slog.Logger
	dryRun  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithDryRun maps and journals rows without contacting the API.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner. The pacing limiter is derived from the configured
// request interval.
func New(cfg *config.Config, creator roads.Creator, j *journal.Journal, opts ...Option) *Runner {
	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}

	r := &Runner{
		cfg:     cfg,
		creator: creator,
		journal: j,
		limiter: rate.NewLimiter(limit, 1),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every row of src until the input is exhausted or ctx is
// canceled. Per-row failures are recorded and do not stop the scan; the
// returned error is non-nil only for an unusable header or cancellation.
// Already-recorded outcomes survive cancellation.
func (r *Runner) Run(ctx context.Context, src RowSource) (State, error) {
	var state State

	mapper, err := route.NewMapper(r.cfg, src.Header())
	if err != nil {
		return state, fmt.Errorf("failed to resolve CSV columns: %w", err)
	}

	capAnnounced := false
	for {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run canceled", "attempted", state.Attempted)
			return state, err
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The CSV reader recovers on the next record; report the
			// row and keep scanning.
			state.Attempted++
			state.Rejected++
			r.record(route.Outcome{
				Kind:   route.OutcomeRejected,
				Line:   row.Line,
				Reason: route.ReasonUnreadableRow,
				Detail: err.Error(),
			})
			continue
		}

		state.Attempted++

		req, rej := mapper.Map(row)
		if rej != nil {
			state.Rejected++
			r.record(route.Outcome{
				Kind:   route.OutcomeRejected,
				Line:   row.Line,
				Reason: rej.Reason,
				Detail: rej.Detail,
			})
			continue
		}

		if r.cfg.Capped() && state.Created >= r.cfg.MaxRoutes && !r.dryRun {
			if !capAnnounced {
				capAnnounced = true
				r.logger.Info("route cap reached, skipping remaining submissions",
					"cap", r.cfg.MaxRoutes)
			}
			state.Skipped++
			r.record(route.Outcome{
				Kind:   route.OutcomeSkipped,
				Line:   req.Line,
				Name:   req.Name,
				Reason: route.ReasonCapReached,
			})
			continue
		}

		if r.dryRun {
			state.Skipped++
			r.record(route.Outcome{
				Kind:   route.OutcomeSkipped,
				Line:   req.Line,
				Name:   req.Name,
				Reason: route.ReasonDryRun,
			})
			continue
		}

		outcome, err := r.submit(ctx, *req)
		if err != nil {
			// Canceled mid-row: nothing to record, already-journaled
			// results stay intact.
			r.logger.Warn("run canceled", "attempted", state.Attempted)
			return state, err
		}

		switch outcome.Kind {
		case route.OutcomeCreated:
			state.Created++
			routesCreated.Set(float64(state.Created))
		default:
			state.Failed++
		}
		r.record(outcome)
	}

	r.journal.Summary(state.Created, state.Rejected, state.Failed, state.Skipped)
	r.logger.Info("run finished",
		"attempted", state.Attempted,
		"created", state.Created,
		"rejected", state.Rejected,
		"failed", state.Failed,
		"skipped", state.Skipped)
	return state, nil
}

// submit issues one route-creation call. A non-nil error means the run was
// canceled; API failures are returned as a failed Outcome instead.
func (r *Runner) submit(ctx context.Context, req route.Request) (route.Outcome, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return route.Outcome{}, ctx.Err()
	}

	r.logger.Debug("creating route",
		"line", req.Line,
		"route", req.Name,
		"origin", req.Origin.String(),
		"destination", req.Destination.String())

	start := time.Now()
	id, err := r.creator.CreateRoute(ctx, req)
	routeCreateDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			return route.Outcome{}, ctx.Err()
		}
		reason := roads.Classify(err)
		r.logger.Error("route creation failed",
			"line", req.Line, "route", req.Name, "reason", reason, "error", err)
		return route.Outcome{
			Kind:   route.OutcomeFailed,
			Line:   req.Line,
			Name:   req.Name,
			Reason: reason,
			Detail: err.Error(),
		}, nil
	}

	r.logger.Info("route created", "line", req.Line, "route", req.Name, "id", id)
	return route.Outcome{
		Kind:    route.OutcomeCreated,
		Line:    req.Line,
		Name:    req.Name,
		RouteID: id,
	}, nil
}

func (r *Runner) record(o route.Outcome) {
	rowOutcomeTotal.WithLabelValues(string(o.Kind)).Inc()
	r.journal.Record(o)
}
