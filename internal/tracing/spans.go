package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/vgrid/internal/grid"
	"github.com/zjrosen/vgrid/internal/pubsub"
)

// Span names for render instrumentation.
const (
	SpanRenderPass = "grid.render_pass"
	SpanDataLoad   = "dataset.load"
)

// RenderObserver subscribes a tracer to a grid's render events and
// records one span per completed pass. The returned cancel stops the
// subscription.
func RenderObserver(ctx context.Context, provider *Provider, g *grid.Grid) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	if !provider.Enabled() {
		return cancel
	}

	events := g.Events().Subscribe(ctx)
	tracer := provider.Tracer()

	go func() {
		for ev := range events {
			if ev.Type != pubsub.RenderEndEvent {
				continue
			}
			info := ev.Payload
			// Passes are recorded retroactively; the span covers the
			// measured duration rather than wrapping the call.
			_, span := tracer.Start(ctx, SpanRenderPass,
				trace.WithTimestamp(ev.Timestamp.Add(-info.Duration)),
				trace.WithAttributes(
					attribute.Int64("grid.pass", int64(info.Pass)),
					attribute.Int("grid.start_row", info.Range.StartRow),
					attribute.Int("grid.end_row", info.Range.EndRow),
					attribute.Int("grid.rendered", info.Rendered),
					attribute.Int("grid.reused", info.Reused),
					attribute.Int("grid.released", info.Released),
				),
			)
			span.End(trace.WithTimestamp(ev.Timestamp))
		}
	}()

	return cancel
}
