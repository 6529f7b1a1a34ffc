package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAsyncFileWriter_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	w, err := NewAsyncFileWriter(path, 1024)
	require.NoError(t, err)

	n, err := w.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, len("first line\n"), n)
	_, _ = w.Write([]byte("second line\n"))
	w.Close()
	w.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first line")
	assert.Contains(t, string(data), "second line")
}

func TestAsyncConsoleHook_WritesFormattedEntries(t *testing.T) {
	out := &lockedBuffer{}
	hook := newAsyncConsoleHook(out, 10)

	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(discard{})
	l.AddHook(hook)

	l.WithField("msg_id", "abc").Info("pacs.008 sent")
	hook.Close()

	assert.Contains(t, out.String(), "pacs.008 sent")
	assert.Contains(t, out.String(), `"msg_id":"abc"`)
}

func TestConsoleHook_SkipsLevelsBelowMinimum(t *testing.T) {
	out := &lockedBuffer{}
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	l.SetOutput(discard{})
	l.AddHook(NewConsoleHook(out, logrus.WarnLevel))

	l.Debug("polling tms health")
	l.Warn("tms unreachable")

	assert.NotContains(t, out.String(), "polling tms health")
	assert.Contains(t, out.String(), "tms unreachable")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logrus.InfoLevel, levelFromEnv())
}
