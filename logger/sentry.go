package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// sentryFrames is the exported method and forward,
// both sitting between the caller and the StdLogger.
const sentryFrames = 2

// A SentryLogger writes logs through a StdLogger
// and ships the errors of WARN, ERROR and FATAL logs to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided StdLogger.
//
// If Sentry cannot be initialized with dsn, tl returns as is.
func NewSentryLogger(tl *StdLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  tl.env,
		IgnoreErrors: []string{"write: broken pipe", "context canceled"},
	})
	if err != nil {
		tl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return tl
	}

	return &SentryLogger{l: tl.AddSkip(sentryFrames + tl.Skip())}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(sentryFrames + i)}
}

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) {
	sl.forward(LogLevelDebug, "", msg, ctx, sl.l.Debug)
}

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) {
	sl.forward(LogLevelInfo, "", msg, ctx, sl.l.Info)
}

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.forward(LogLevelWarn, sentry.LevelWarning, msg, ctx, sl.l.Warn)
}

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.forward(LogLevelError, sentry.LevelError, msg, ctx, sl.l.Error)
}

// Fatal writes a fatal log and sends it to Sentry.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.forward(LogLevelFatal, sentry.LevelFatal, msg, ctx, sl.l.Fatal)
}

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() - sentryFrames }

func (sl *SentryLogger) forward(
	ll LogLevel,
	level sentry.Level,
	msg string,
	ctx *LogContext,
	write func(string, *LogContext),
) {
	if sl.l.LogLevel() > ll {
		return
	}

	write(msg, ctx)
	if level == "" || ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.User != nil {
			scope.SetUser(sentry.User{Username: ctx.User.GetUsername()})
			scope.SetTag("roles", fmt.Sprint(ctx.User.GetRoles()))
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetExtra("message", msg)
		scope.SetLevel(level)
		sentry.CaptureException(ctx.Error)
	})
}
