// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package observability

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// QueryTracer implements pgx.QueryTracer. It opens a client span per query
// and feeds query durations to Metrics. A nil Metrics only traces.
type QueryTracer struct {
	metrics *Metrics
	tracer  trace.Tracer
}

// NewQueryTracer creates a pgx query tracer.
func NewQueryTracer(m *Metrics) *QueryTracer {
	return &QueryTracer{metrics: m, tracer: otel.Tracer(instrumentationName)}
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	operation string
}

// TraceQueryStart implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op := SQLOperation(data.SQL)
	ctx, _ = t.tracer.Start(ctx, "db."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
		),
	)
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), operation: op})
}

// TraceQueryEnd implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	if data.Err != nil {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	} else {
		span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	span.End()

	if t.metrics == nil {
		return
	}
	if st, ok := ctx.Value(queryStartKey{}).(queryStart); ok {
		t.metrics.ObserveQuery(st.operation, time.Since(st.at), data.Err)
	}
}

// SQLOperation returns the lower-cased leading keyword of a statement.
// Blank input is "unknown".
func SQLOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
