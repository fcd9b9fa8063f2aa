package logger

import (
	"io"
	log "log/slog"
	"os"
)

var LogWriter io.Writer

func InitLogger() {
	LogWriter = os.Stdout

	handler := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	logger := log.New(&ContextHandler{handler})
	log.SetDefault(logger)
}
