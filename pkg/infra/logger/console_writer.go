package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook copies entries at or above minLevel to out so container log
// collectors see the same lines as logs/<server>.log.
type ConsoleHook struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel logrus.Level
}

func NewConsoleHook(out io.Writer, minLevel logrus.Level) *ConsoleHook {
	return &ConsoleHook{out: out, minLevel: minLevel}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= h.minLevel {
			levels = append(levels, l)
		}
	}
	return levels
}
