package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}
}

func TestStdLogger(t *testing.T) {
	color.NoColor = true
	t.Setenv("SENTRY_DSN", "")

	for _, tc := range []struct {
		name  string
		level logger.LogLevel
		log   func(l logger.Logger, msg string)
		emit  bool
	}{
		{"Debug-At-Debug", logger.LogLevelDebug, func(l logger.Logger, msg string) { l.Debug(msg, nil) }, true},
		{"Debug-At-Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Debug(msg, nil) }, false},
		{"Info-At-Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Info(msg, nil) }, true},
		{"Warn-At-Error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Warn(msg, nil) }, false},
		{"Error-At-Warn", logger.LogLevelWarn, func(l logger.Logger, msg string) { l.Error(msg, nil) }, true},
		{"Fatal-At-Fatal", logger.LogLevelFatal, func(l logger.Logger, msg string) { l.Fatal(msg, nil) }, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.log(l, "such fun")

			// Assert
			if !tc.emit {
				require.Zero(t, b.Len())
				return
			}

			out := b.Bytes()
			require.True(t, logLevelRegexp.Match(out), string(out))
			require.True(t, fpRegexp.Match(out), string(out))
			require.Equal(t, "such fun", string(msgRegexp.FindSubmatch(out)[1]))
		})
	}
}

func TestStdLoggerLogContext(t *testing.T) {
	color.NoColor = true
	t.Setenv("SENTRY_DSN", "")

	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("oops", &logger.LogContext{Caller: "elsewhere.go:1", Error: errors.New("test")})

	// Assert
	require.Equal(t, `[ERROR] elsewhere.go:1 'oops' log_context: {"error":"test"}`+"\n", b.String())
}

func TestWithLevelUnk(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	// Arrange + Act
	l := logger.New(logger.WithLevel(logger.LogLevelUnk))

	// Assert
	require.Equal(t, logger.LogLevelInfo, l.LogLevel())
}

func TestStdLoggerAddSkip(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	// Arrange
	l, ok := logger.New(logger.WithSkip(1)).(logger.SkipLogger)
	require.True(t, ok)

	// Act
	skipped := l.AddSkip(3)

	// Assert
	require.Equal(t, 1, l.Skip())
	require.Equal(t, 3, skipped.Skip())
}
