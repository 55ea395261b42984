package logger

import (
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// lineCh feeds the TUI log panel. Records are dropped when nobody reads.
var lineCh = make(chan string, 256)

// SubscribeLogLines returns the channel of formatted records logged while
// the TUI is running.
func SubscribeLogLines() <-chan string {
	return lineCh
}

type lineWriter struct{}

func (lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case lineCh <- line:
		default:
		}
	}
	return len(p), nil
}

func newPanelHandler() slog.Handler {
	inner := tint.NewHandler(lineWriter{}, &tint.Options{
		Level:       LevelTrace,
		TimeFormat:  "15:04:05",
		NoColor:     true,
		ReplaceAttr: bracketLevel,
	})
	return &gatedHandler{inner: inner, level: FileLevelVar, onlyInTUI: true}
}
