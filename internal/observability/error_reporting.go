package observability

import (
	"time"

	"ecoatlas/internal/config"
	contextutils "ecoatlas/internal/utils"

	"github.com/getsentry/sentry-go"
)

const errorReportFlushTimeout = 2 * time.Second

// InitErrorReporting configures the Sentry client. An empty DSN leaves
// reporting disabled. The returned func flushes buffered events.
func InitErrorReporting(cfg config.SentryConfig, release string) (flush func(), err error) {
	return initErrorReporting(cfg, release, nil)
}

func initErrorReporting(cfg config.SentryConfig, release string, beforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          release,
		AttachStacktrace: true,
		BeforeSend:       beforeSend,
	}); err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to initialize sentry: %w", err)
	}
	return func() { sentry.Flush(errorReportFlushTimeout) }, nil
}

// ReportError sends err to Sentry with the given tags. It does nothing when
// reporting is disabled.
func ReportError(err error, tags map[string]string) {
	hub := sentry.CurrentHub()
	if err == nil || hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	for k, v := range tags {
		if v != "" {
			hub.Scope().SetTag(k, v)
		}
	}
	hub.CaptureException(err)
}
