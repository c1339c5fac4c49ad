// Package debug is the bridge's category logger. Logging is off until
// Enable is called; the hot paths then cost one mutex and a level check.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Level selects how much is written.
type Level int

const (
	LevelBasic Level = iota
	LevelVerbose
)

// ParseLevel accepts "basic" and "verbose".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "", "basic":
		return LevelBasic, nil
	case "verbose":
		return LevelVerbose, nil
	}
	return LevelBasic, fmt.Errorf("unknown log level %q", s)
}

func (l Level) String() string {
	if l == LevelVerbose {
		return "verbose"
	}
	return "basic"
}

var (
	mu      sync.Mutex
	file    *os.File
	logger  *slog.Logger
	level   Level
	enabled bool
)

// DefaultPath returns ~/.config/roto-bridge/debug.log
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roto-bridge", "debug.log")
}

// Enable starts logging to path (DefaultPath when empty), truncating it.
func Enable(path string, lvl Level) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	mu.Lock()
	if file != nil {
		file.Close()
	}
	file = f
	mu.Unlock()

	EnableWriter(f, lvl)
	Log("debug", "=== Debug logging started (%s) ===", lvl)
	return nil
}

// EnableWriter logs to w; used by tests and by the probe command, which
// logs to stderr.
func EnableWriter(w io.Writer, lvl Level) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(h)
	level = lvl
	enabled = true
}

// Disable stops logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = nil
	enabled = false
}

// Enabled reports whether messages at lvl are written.
func Enabled(lvl Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled && lvl <= level
}

// Log writes a basic message under category.
func Log(category, format string, args ...any) {
	write(LevelBasic, category, format, args)
}

// Verbose writes a message that only shows at the verbose level.
func Verbose(category, format string, args ...any) {
	write(LevelVerbose, category, format, args)
}

func write(lvl Level, category, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil || lvl > level {
		return
	}
	slogLevel := slog.LevelInfo
	if lvl == LevelVerbose {
		slogLevel = slog.LevelDebug
	}
	logger.Log(context.Background(), slogLevel, fmt.Sprintf(format, args...), "cat", category)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Verbose(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
