// Package logger owns the process-wide structured logger. Until Setup is
// called, L returns a no-op logger so commands that never log (the bare
// root invocation) have no side effects.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// Dir is the per-workspace state directory.
	Dir      = ".skill-manager"
	fileName = "skill-manager.log"
)

type Config struct {
	Root  string
	Level string
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = zap.NewNop()
	logFile *os.File
)

// Setup opens <root>/.skill-manager/logs/skill-manager.log and installs a
// JSON logger writing to it. The returned cleanup flushes and closes the
// file and restores the no-op logger.
func Setup(cfg Config) (func() error, error) {
	root := filepath.Clean(cfg.Root)
	if strings.TrimSpace(cfg.Root) == "" {
		root = "."
	}

	dir := filepath.Join(root, Dir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		setNop()
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		setNop()
		return nil, err
	}

	level := ParseLevel(cfg.Level)
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	l := New(zapcore.AddSync(f), level, cfg.Debug)

	mu.Lock()
	global = l
	logFile = f
	mu.Unlock()

	l.Info("logger.initialized", zap.String("path", path), zap.Bool("debug", cfg.Debug))

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		_ = global.Sync()
		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		global = zap.NewNop()
		return cerr
	}

	return cleanup, nil
}

// New builds a JSON zap logger on w. Exposed for tests that need to
// capture output.
func New(w zapcore.WriteSyncer, level zapcore.Level, addCaller bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zap.NewAtomicLevelAt(level))

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if addCaller {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}

// ParseLevel converts a level name to a zap level, defaulting to info.
// "warning" is accepted as an alias of "warn".
func ParseLevel(level string) zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func setNop() {
	mu.Lock()
	defer mu.Unlock()
	global = zap.NewNop()
	logFile = nil
}
