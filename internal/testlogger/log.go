package testlogger

import (
	"os"
	"testing"

	"github.com/drand/strobe/log"
)

// Level returns the level to default the logger to, based on the
// STROBE_TEST_LOGS environment variable.
func Level(t testing.TB) int {
	logLevel := log.InfoLevel
	debugEnv, isDebug := os.LookupEnv("STROBE_TEST_LOGS")
	if isDebug && debugEnv == "DEBUG" {
		t.Log("Enabling DebugLevel logs")
		logLevel = log.DebugLevel
	}

	return logLevel
}

// New returns a logger configured for test output, tagged with the
// test's own name and a fresh correlation ID so that a table-driven
// test's subtests, each logging concurrently via t.Parallel, can still
// be told apart in interleaved output.
func New(t testing.TB) log.Logger {
	return log.WithRunID(log.New(nil, Level(t), true).With("testName", t.Name()))
}
