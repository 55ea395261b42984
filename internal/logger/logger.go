package logger

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"noticeboard/internal/version"

	"charm.land/lipgloss/v2"
	charmlog "charm.land/log/v2"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats printf-style messages and splits multi-line ones so every
// line carries its own level and timestamp.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}

	lines := strings.Split(msgStr, "\n")
	for i, line := range lines {
		r := slog.NewRecord(t, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels. NOTICE sits on slog's Info so third-party slog users
// show up by default; INFO is the chattier "verbose" level.
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the console log level
var LevelVar = new(slog.LevelVar)

// FileLevelVar allows dynamic changing of the file log level
var FileLevelVar = new(slog.LevelVar)

var (
	tuiEnabled atomic.Bool

	fileMu  sync.Mutex
	logFile *os.File
)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel changes the console level. The file never logs less than INFO.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// ParseLevel maps a config/flag level name onto the custom levels.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info", "verbose":
		return LevelInfo, true
	case "notice", "":
		return LevelNotice, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelNotice, false
}

// SetTUIEnabled mutes console output while the alt screen owns the terminal.
// The log file keeps receiving records.
func SetTUIEnabled(enabled bool) {
	tuiEnabled.Store(enabled)
}

// IsTUIEnabled reports whether console output is currently muted for the TUI.
func IsTUIEnabled() bool {
	return tuiEnabled.Load()
}

func levelLabel(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelNotice:
		return "NOTICE"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	}
	return level.String()
}

// NewLogger builds the console + file logger. logPath may be empty to skip
// the file handler.
func NewLogger(logPath string) *slog.Logger {
	return slog.New(&FanoutHandler{handlers: buildHandlers(os.Stderr, logPath)})
}

func buildHandlers(console *os.File, logPath string) []slog.Handler {
	isTTY := term.IsTerminal(int(console.Fd()))

	// 1. Console handler
	cl := charmlog.NewWithOptions(console, charmlog.Options{
		Level:           charmlog.Level(LevelTrace), // filtering happens in gatedHandler
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	styles := charmlog.DefaultStyles()
	for _, lvl := range []slog.Level{LevelTrace, LevelDebug, LevelInfo, LevelNotice, LevelWarn, LevelError, LevelFatal} {
		style := lipgloss.NewStyle().SetString(levelLabel(lvl)).Bold(true)
		if isTTY {
			style = style.Foreground(levelColor(lvl))
		}
		styles.Levels[charmlog.Level(lvl)] = style
	}
	cl.SetStyles(styles)

	handlers := []slog.Handler{
		&gatedHandler{inner: cl, level: LevelVar, muteInTUI: true},
		newPanelHandler(),
	}

	// 2. File handler (no color)
	if logPath == "" {
		return handlers
	}
	w, err := openLogFile(logPath)
	if err != nil {
		fmt.Fprintf(console, "Failed to open log file: %v\n", err)
		return handlers
	}
	fileOpts := &tint.Options{
		Level:       FileLevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     true,
		ReplaceAttr: bracketLevel,
	}
	return append(handlers, tint.NewHandler(w, fileOpts))
}

func bracketLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(fmt.Sprintf("[%-6s]", levelLabel(level)))
		}
	}
	return a
}

func levelColor(level slog.Level) color.Color {
	switch {
	case level >= LevelFatal:
		return lipgloss.Color("9")
	case level >= LevelError:
		return lipgloss.Color("1")
	case level >= LevelWarn:
		return lipgloss.Color("3")
	case level >= LevelNotice:
		return lipgloss.Color("2")
	}
	return lipgloss.Color("4")
}

func openLogFile(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	fileMu.Lock()
	logFile = f
	fileMu.Unlock()
	return f, nil
}

// Cleanup closes the log file.
func Cleanup() {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

// gatedHandler applies a dynamic level and the TUI mute to an inner handler.
type gatedHandler struct {
	inner     slog.Handler
	level     slog.Leveler
	muteInTUI bool
	onlyInTUI bool
}

func (h *gatedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.muteInTUI && tuiEnabled.Load() {
		return false
	}
	if h.onlyInTUI && !tuiEnabled.Load() {
		return false
	}
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *gatedHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *gatedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gatedHandler{inner: h.inner.WithAttrs(attrs), level: h.level, muteInTUI: h.muteInTUI, onlyInTUI: h.onlyInTUI}
}

func (h *gatedHandler) WithGroup(name string) slog.Handler {
	return &gatedHandler{inner: h.inner.WithGroup(name), level: h.level, muteInTUI: h.muteInTUI, onlyInTUI: h.onlyInTUI}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler combines handlers; each keeps its own level.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

func systemInfo() []string {
	executable, _ := os.Executable()
	return []string{
		fmt.Sprintf("%s [%s] (commit %s, built %s)", version.ApplicationName, version.Version, version.Commit, version.BuildDate),
		fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()),
		fmt.Sprintf("ARCH: %s  OS: %s  GO: %s", runtime.GOARCH, runtime.GOOS, runtime.Version()),
	}
}

// Fatal logs a message with system info and stack trace at FATAL, then
// panics with FatalError so the caller's deferred cleanup still runs.
func Fatal(ctx context.Context, msg any, args ...any) {
	FatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with extra frames skipped from the trace.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()
	SetTUIEnabled(false)

	pc := make([]uintptr, 32)
	n := runtime.Callers(2+skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	var traceLines []string
	wd, _ := os.Getwd()
	for i := 0; ; i++ {
		frame, more := frames.Next()
		file := frame.File
		if wd != "" {
			if rel, err := filepath.Rel(wd, file); err == nil && !strings.HasPrefix(rel, "..") {
				file = "./" + filepath.ToSlash(rel)
			}
		}
		traceLines = append(traceLines, fmt.Sprintf("  %2d: %s:%d (%s)", i, file, frame.Line, filepath.Base(frame.Function)))
		if !more {
			break
		}
	}

	body := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(body, "%") {
		body = fmt.Sprintf(body, args...)
	}

	output := []any{
		"### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		systemInfo(),
		"",
		traceLines,
		"### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		body,
	}
	logAt(ctx, now, LevelFatal, output)

	panic(FatalError{})
}

// FatalNoTrace logs a message at FatalLevel without stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	SetTUIEnabled(false)
	logAt(ctx, time.Now(), LevelFatal, msg, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}
