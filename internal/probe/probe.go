// Package probe runs a one-shot connectivity check against a datasource:
// connect, count one table, report, and always disconnect.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultTable is counted when no table is configured.
const DefaultTable = "users"

// ErrProbeFailed marks any connect or query failure. The probe does not
// distinguish between the two.
var ErrProbeFailed = errors.New("connectivity or query failure")

// Client is the subset of a datasource client the probe drives.
type Client interface {
	Connect(ctx context.Context) error
	Count(ctx context.Context, table string) (int64, error)
	Disconnect(ctx context.Context) error
}

// Result captures the outcome of a single run.
type Result struct {
	Table     string
	Connected bool
	Count     int64
	Err       error

	// DisconnectErr never turns a run into a failure. It is left to the
	// caller to log, since it may carry connection details.
	DisconnectErr error
}

// OK reports whether the run connected and counted without error.
func (r Result) OK() bool {
	return r.Err == nil && r.Connected
}

// Probe runs the connectivity check.
type Probe struct {
	client   Client
	table    string
	reporter Reporter
	logger   *slog.Logger
}

// New creates a new Probe.
// An empty table falls back to DefaultTable; a nil logger falls back to slog.Default().
func New(client Client, table string, reporter Reporter, logger *slog.Logger) *Probe {
	if table == "" {
		table = DefaultTable
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{
		client:   client,
		table:    table,
		reporter: reporter,
		logger:   logger,
	}
}

// Run connects, counts the table and reports the outcome.
// Failures are reported and returned in Result.Err, never as a panic or exit.
// Disconnect is called exactly once on every path.
func (p *Probe) Run(ctx context.Context) (res Result) {
	res.Table = p.table

	if p.client == nil {
		res.Err = fmt.Errorf("%w: client is nil", ErrProbeFailed)
		p.reporter.Failed(res.Err)
		return res
	}

	defer func() {
		if err := p.client.Disconnect(ctx); err != nil {
			res.DisconnectErr = err
			return
		}
		p.logger.Debug("disconnected")
	}()

	p.reporter.Connecting()

	start := time.Now()
	if err := p.client.Connect(ctx); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrProbeFailed, err)
		p.logger.Debug("connect failed", slog.Duration("duration", time.Since(start)))
		p.reporter.Failed(res.Err)
		return res
	}
	res.Connected = true
	p.logger.Debug("connected", slog.Duration("duration", time.Since(start)))
	p.reporter.Connected()

	start = time.Now()
	count, err := p.client.Count(ctx, p.table)
	if err == nil && count < 0 {
		err = fmt.Errorf("negative count %d for %s", count, p.table)
	}
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrProbeFailed, err)
		p.logger.Debug("count failed",
			slog.String("table", p.table),
			slog.Duration("duration", time.Since(start)),
		)
		p.reporter.Failed(res.Err)
		return res
	}

	res.Count = count
	p.logger.Debug("count complete",
		slog.String("table", p.table),
		slog.Int64("count", count),
		slog.Duration("duration", time.Since(start)),
	)
	p.reporter.Counted(p.table, count)

	return res
}
