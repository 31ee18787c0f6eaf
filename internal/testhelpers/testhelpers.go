package testhelpers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// AssertLogContains checks that wantLogEntry is contained in at least one of the log entries
func AssertLogContains(t *testing.T, wantLogEntry string, entries []*logrus.Entry) {
	t.Helper()

	if wantLogEntry != "" {
		messages := make([]string, len(entries))
		for k, entry := range entries {
			messages[k] = entry.Message
		}

		require.Contains(t, messages, wantLogEntry)
	}
}

// AssertLogLevel checks that an entry with message msg was logged at level
func AssertLogLevel(t *testing.T, msg string, level logrus.Level, entries []*logrus.Entry) {
	t.Helper()

	for _, entry := range entries {
		if entry.Message == msg {
			require.Equal(t, level, entry.Level, msg)
			return
		}
	}

	require.Failf(t, "log entry not found", "%q", msg)
}
