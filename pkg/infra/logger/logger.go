package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logDir = "logs"

func newBaseLogger() *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv())
	return logger
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewLogger writes to logs/<serverType>.log and echoes every entry to stdout.
func NewLogger(serverType string) *logrus.Logger {
	logger := newBaseLogger()

	if serverType == "" {
		serverType = "client"
	}
	logFile := filepath.Clean(filepath.Join(logDir, serverType+".log"))
	if !strings.HasPrefix(logFile, logDir+string(filepath.Separator)) {
		log.Fatalf("Invalid log file path: must be in logs directory")
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		log.Fatalf("Failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("Failed to initialize async log writer: %v", err)
	}

	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout, logger.GetLevel()))

	return logger
}

// NewConsoleLogger is used by the command line tools; nothing is written to disk.
func NewConsoleLogger(bufferSize int) (*logrus.Logger, func()) {
	logger := newBaseLogger()
	hook := NewAsyncConsoleHook(bufferSize)
	logger.SetOutput(discard{})
	logger.AddHook(hook)
	return logger, hook.Close
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
