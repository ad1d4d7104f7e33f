/*
Package logger provides leveled logging to a crossweb server by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [StdLogger] initialized with [LogLevelWarn]
only produces messages from [*StdLogger.Warn], [*StdLogger.Error] and [*StdLogger.Fatal].

Log messages emitted by [StdLogger] are composed of a timestamp, the log level,
the call site, the message and an optional log context:

	2022/04/28 15:55:21 [WARN] crossweb/http/router/build.go:43 'skipping route' log_context: {"data":{"key":"get:/x"}}

The log context is a JSON-encoded [LogContext]
carrying data inessential to the message proper.

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [StdLogger] in a [SentryLogger],
which forwards the [LogContext.Error] of warnings and errors to Sentry.
*/
package logger
