package pipeline

import (
	"context"

	"github.com/R3E-Network/petstore/internal/app/metrics"
	"github.com/R3E-Network/petstore/internal/logging"
)

// FailureReporter is notified of internal errors. Implementations are shared
// by all requests and must be safe for concurrent use.
type FailureReporter interface {
	InternalErrorOccurred(ctx context.Context, err error)
}

// ReporterFunc adapts a function to FailureReporter.
type ReporterFunc func(ctx context.Context, err error)

func (f ReporterFunc) InternalErrorOccurred(ctx context.Context, err error) {
	f(ctx, err)
}

// IgnoreFailures drops every report.
var IgnoreFailures FailureReporter = ReporterFunc(func(context.Context, error) {})

// LogReporter logs failures at error level.
type LogReporter struct {
	log *logging.Logger
}

// NewLogReporter returns a reporter writing to log.
func NewLogReporter(log *logging.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) InternalErrorOccurred(ctx context.Context, err error) {
	r.log.WithContext(ctx).WithError(err).Error("internal error")
}

// MetricsReporter counts failures in Prometheus.
type MetricsReporter struct{}

func (MetricsReporter) InternalErrorOccurred(context.Context, error) {
	metrics.RecordInternalError()
}

type multiReporter []FailureReporter

func (m multiReporter) InternalErrorOccurred(ctx context.Context, err error) {
	for _, r := range m {
		r.InternalErrorOccurred(ctx, err)
	}
}

// Reporters fans a report out to each reporter in turn.
func Reporters(reporters ...FailureReporter) FailureReporter {
	out := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
