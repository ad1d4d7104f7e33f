package handler_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/logger"
)

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger { return testLogger{new(bytes.Buffer)} }

func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }

const sampleConfig = `{
	"guard": {
		"encryption": {
			"method": "aes128",
			"key": "5F4DCC3B5AA765D61D8327DEB882CF99",
			"iv": "2B95990A9151374ABD8FF8C5A7A0FE08"
		},
		"locations": {"index": "/index.html", "login": "/login.html"},
		"users": {
			"admin@sample": {"password": "correct", "roles": ["role1"]}
		}
	}
}`

func epoch() time.Time { return time.UnixMilli(0) }

func sampleCfg(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(sampleConfig))
	require.Nil(t, err)
	return cfg
}

func newGuard(t *testing.T, cfg *config.Config, opts ...guard.GuardOpt) *guard.Guard {
	t.Helper()

	opts = append([]guard.GuardOpt{
		guard.WithLogger(newLogger()),
		guard.WithSessionStoreOpts(guard.WithClock(epoch)),
	}, opts...)

	g, err := guard.New(cfg, opts...)
	require.Nil(t, err)
	return g
}

func newResponder() *resp.Responder {
	return resp.NewResponder(resp.WithLogger(newLogger()))
}
