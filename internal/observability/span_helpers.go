package observability

import (
	contextutils "ecoatlas/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FinishSpan ends a span and records any error pointed to by errPtr.
// Use with a named error return: `defer observability.FinishSpan(span, &err)`
//
// Client errors (validation, not found) are annotated but leave the span status unset.
func FinishSpan(span trace.Span, errPtr *error) {
	if span == nil {
		return
	}
	if errPtr != nil && *errPtr != nil {
		err := *errPtr
		span.SetAttributes(attribute.String("error.code", string(contextutils.GetErrorCode(err))))
		if contextutils.IsClientError(err) {
			span.AddEvent("client_error", trace.WithAttributes(attribute.String("error.message", err.Error())))
		} else {
			span.RecordError(err, trace.WithStackTrace(true))
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
