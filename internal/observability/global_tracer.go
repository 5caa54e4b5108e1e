package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "eco-atlas"

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer(tracerName)
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		globalTracer = otel.Tracer(tracerName)
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceProblemFunction starts a new span for a problem service function.
func TraceProblemFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "problem", functionName, attributes...)
}

// TraceSolutionFunction starts a new span for a solution service function.
func TraceSolutionFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "solution", functionName, attributes...)
}

// TraceIdeaFunction starts a new span for an idea service function.
func TraceIdeaFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "idea", functionName, attributes...)
}

// TraceStatsFunction starts a new span for a stats service function.
func TraceStatsFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "stats", functionName, attributes...)
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// TraceDatabaseFunction starts a new span for a database function.
func TraceDatabaseFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "database", functionName, attributes...)
}

// AttributeProblemID returns a tracing attribute for a problem ID.
func AttributeProblemID(id int) attribute.KeyValue {
	return attribute.Int("problem.id", id)
}

// AttributeSolutionID returns a tracing attribute for a solution ID.
func AttributeSolutionID(id int) attribute.KeyValue {
	return attribute.Int("solution.id", id)
}

// AttributeIdeaID returns a tracing attribute for an idea ID.
func AttributeIdeaID(id int) attribute.KeyValue {
	return attribute.Int("idea.id", id)
}

// AttributeFilter returns a tracing attribute for a list filter value.
func AttributeFilter(name, value string) attribute.KeyValue {
	return attribute.String("filter."+name, value)
}

// AttributeCount returns a tracing attribute for a result count.
func AttributeCount(n int) attribute.KeyValue {
	return attribute.Int("result.count", n)
}
