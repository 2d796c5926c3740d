package provisioning

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONObserver(level zerolog.Level) (*LogObserver, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogObserver(&buf, LogFormatJSON, level), &buf
}

// lines decodes every JSON log line written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestLogObserver_Printf(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.InfoLevel)

	observer.Printf("test message: %s", "value")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "test message: value", got[0]["message"])
	assert.Equal(t, "info", got[0]["level"])
}

func TestLogObserver_Event(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.InfoLevel)

	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "up",
		Resource: "lb-1",
		Message:  "load balancer created",
		Fields:   map[string]string{"type": "load-balancer", "id": "9"},
	})

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "resource.created", got[0]["event"])
	assert.Equal(t, "up", got[0]["phase"])
	assert.Equal(t, "lb-1", got[0]["resource"])
	assert.Equal(t, "9", got[0]["id"])
	assert.Equal(t, "load balancer created", got[0]["message"])
}

func TestLogObserver_FailuresLogAtErrorLevel(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.ErrorLevel)

	LogPhaseStart(observer, "up")
	LogPhaseFailed(observer, "up", assert.AnError)

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "error", got[0]["level"])
	assert.Equal(t, "phase.failed", got[0]["event"])
}

func TestLogObserver_Progress(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.InfoLevel)

	observer.Progress("up", 1, 4)
	observer.Progress("up", 0, 0)

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.InDelta(t, 25, got[0]["percent"], 0)
	assert.NotContains(t, got[1], "percent")
}

func TestLogObserver_WithFields(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.InfoLevel)

	child := observer.WithFields(map[string]string{"environment": "staging"})
	child.Printf("from child")
	observer.Printf("from parent")

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "staging", got[0]["environment"])
	assert.NotContains(t, got[1], "environment")
}

func TestLogObserver_ConsoleFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	observer := NewLogObserver(&buf, LogFormatConsole, zerolog.InfoLevel)

	LogResourceNoop(observer, "down", "load-balancer", "lb-1", "no matching load balancers")

	out := buf.String()
	assert.Contains(t, out, "no matching load balancers")
	assert.Contains(t, out, "resource.noop")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestLogObserver_AutoFormatIsJSONForBuffers(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogObserver(&buf, LogFormatAuto, zerolog.InfoLevel).Printf("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    LogFormat
		wantErr bool
	}{
		{"", LogFormatAuto, false},
		{"auto", LogFormatAuto, false},
		{"JSON", LogFormatJSON, false},
		{"console", LogFormatConsole, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLogFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogHelpers(t *testing.T) {
	t.Parallel()
	observer, buf := newJSONObserver(zerolog.InfoLevel)

	LogPhaseStart(observer, "up")
	LogPhaseComplete(observer, "up", time.Second)
	LogResourceCreating(observer, "up", "node", "web-1")
	LogResourceCreated(observer, "up", "node", "web-1", "42")
	LogResourceExists(observer, "up", "node", "web-1", "42")
	LogResourceDeleting(observer, "down", "node", "web-1", "42")
	LogResourceDeleted(observer, "down", "node", "web-1", "42")
	LogResourceNoop(observer, "down", "node", "web-2", "nothing to delete")
	LogNotification(observer, "lb-1", "web-1", "up")

	got := lines(t, buf)
	require.Len(t, got, 9)

	var types []string
	for _, l := range got {
		types = append(types, l["event"].(string))
	}
	assert.Equal(t, []string{
		"phase.started", "phase.completed",
		"resource.creating", "resource.created", "resource.exists",
		"resource.deleting", "resource.deleted", "resource.noop",
		"notification",
	}, types)
	assert.Equal(t, "web-1", got[8]["subject"])
	assert.Equal(t, "lb-1", got[8]["resource"])
}
