package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/logger"
)

// recoveryLogger prints recovered panics through a logger.Logger.
type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(v ...any) {
	rl.l.Error(fmt.Sprint(v...), nil)
}

// Recover turns a panic into a 500, logging what was recovered.
func Recover(log logger.Logger) Adapter {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log}),
		handlers.PrintRecoveryStack(false),
	)
}

// ReportPanic recovers panics and, outside development,
// reports them to Sentry through sentryhttp before responding with a 500.
func ReportPanic(env crossweb.Environment, log logger.Logger) Adapter {
	if env.IsDevelopment() {
		return Recover(log)
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return Chain(sh.Handle(h), Recover(log))
	}
}
