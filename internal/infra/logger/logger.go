package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger debug 環境輸出 console 格式，其他環境輸出 json
// extra 會一起寫入，例如 KafkaLogWriter
func NewLogger(level string, debug bool, extra ...io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if debug {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if len(extra) > 0 {
		writers := append([]io.Writer{out}, extra...)
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "shoeverse").Logger()
}
