package filter_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb/config"
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
	"routes": {
		"get:/resource/1": {"handler": "Resource.one", "allow": ["role1"]},
		"*:/resource/5": {"handler": "Resource.five"},
		"post:/resource/6": {"handler": "Resource.six", "allow": []}
	},
	"guard": {
		"encryption": {
			"method": "aes128",
			"key": "5F4DCC3B5AA765D61D8327DEB882CF99",
			"iv": "2B95990A9151374ABD8FF8C5A7A0FE08"
		},
		"locations": {"index": "/index.html", "login": "/login.html"},
		"users": {
			"admin": {"password": "correct", "roles": ["role1"]},
			"other": {"password": "correct", "roles": ["role2"]}
		}
	}
}`

func sampleCfg(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(sampleConfig))
	require.Nil(t, err)
	return cfg
}
