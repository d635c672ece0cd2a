package supervisor

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging installs the default slog logger: tinted output to stderr plus
// a rotating log file, so a session that died still leaves a record of why
// the supervisor exited.
func SetupLogging(logPath string, maxSizeMB, maxBackups int) {
	rotating := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	multiWriter := io.MultiWriter(os.Stderr, rotating)

	handler := tint.NewHandler(multiWriter, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.DateTime,
	})

	slog.SetDefault(slog.New(handler))
}
