package guard_test

import (
	"bytes"
	"fmt"

	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/logger"
)

const (
	sampleKey = "5F4DCC3B5AA765D61D8327DEB882CF99"
	sampleIV  = "2B95990A9151374ABD8FF8C5A7A0FE08"
)

var sampleEncryption = config.Encryption{Method: "aes128", Key: sampleKey, IV: sampleIV}

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger                                  { return testLogger{bytes.NewBuffer(nil)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprintln(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
func (tl testLogger) String() string                         { return tl.b.String() }

func guardInertEncryption() config.Encryption {
	return config.Encryption{Method: "aes128", Key: "not hex", IV: sampleIV}
}
