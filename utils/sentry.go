package utils

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

func InitSentry(dsn, env, version string) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "wellness-admin@" + version,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})

	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	return nil
}

func CaptureError(err error, context map[string]interface{}) {
	if hub := sentry.CurrentHub(); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
