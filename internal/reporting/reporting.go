// Package reporting - Sentry error reporting
// Reporting is a no-op until Init is called with a DSN.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Options configures error reporting
type Options struct {
	// DSN enables reporting when set
	DSN string

	// Environment tags every event
	Environment string

	// Release identifies the build
	Release string

	// SampleRate is the traces sample rate
	SampleRate float64
}

// Init configures the Sentry client. An empty DSN leaves reporting disabled
// and is not an error.
func Init(opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		TracesSampleRate: opts.SampleRate,
		EnableTracing:    opts.DSN != "",
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			// subscriber identity never leaves the process
			event.User = sentry.User{}
			return event
		},
	})
	if err != nil {
		return err
	}

	if opts.DSN == "" {
		logger.Info("error reporting disabled")
	} else {
		logger.Info("error reporting enabled", zap.String("environment", opts.Environment))
	}
	return nil
}

// Flush waits briefly for buffered events
func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports err with tags
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// RecoverError converts a recovered panic value into an error and reports it
func RecoverError(recovered interface{}, tags map[string]string) error {
	if recovered == nil {
		return nil
	}
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	}
	CaptureError(err, tags)
	return err
}
