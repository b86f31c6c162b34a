package services

import (
	"context"
	"sync/atomic"
)

type readReportKey struct{}

// ReadReport records whether a read served under its context fell back to
// defaults because the store failed.
type ReadReport struct {
	degraded atomic.Bool
}

// WithReadReport returns a context that collects degraded reads into the
// returned report.
func WithReadReport(ctx context.Context) (context.Context, *ReadReport) {
	r := &ReadReport{}
	return context.WithValue(ctx, readReportKey{}, r), r
}

func (r *ReadReport) Degraded() bool {
	return r.degraded.Load()
}

func markDegraded(ctx context.Context) {
	if r, ok := ctx.Value(readReportKey{}).(*ReadReport); ok {
		r.degraded.Store(true)
	}
}
