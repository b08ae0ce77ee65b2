// Package logging provides config-driven categorized logging for innermotion.
// Every category is a named child of one zap logger. Categories can be
// switched off individually; a disabled category gets a no-op logger.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot       Category = "boot"       // CLI start-up, config resolution
	CategoryConfig     Category = "config"     // Config load/validate
	CategoryEngine     Category = "engine"     // Step loop, consciousness transitions
	CategoryMemory     Category = "memory"     // Memory store and self-strength
	CategoryDNA        Category = "dna"        // DNA/overflow resolver, mixed states
	CategoryLanguage   Category = "language"   // Language acquisition latch
	CategoryExperiment Category = "experiment" // Comparison harness
	CategoryReport     Category = "report"     // Summary rendering
	CategoryAudit      Category = "audit"      // Milestone events
)

// Config controls logger construction.
type Config struct {
	Level      string          `yaml:"level" json:"level,omitempty"`   // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"` // json, console
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"`
}

// Logger wraps a sugared zap logger for one category.
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	mu         sync.RWMutex
	base       = zap.NewNop()
	categories map[string]bool
	loggers    = make(map[Category]*Logger)
)

// ParseLevel maps a level name onto a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the process logger from cfg.
// Should be called once at startup, before any category logger is used.
func Initialize(cfg Config) error {
	var zc zap.Config
	if cfg.Format == "console" || cfg.Format == "text" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Use(l, cfg.Categories)

	Get(CategoryBoot).Debug("logging initialized: level=%s format=%s", zc.Level.String(), cfg.Format)
	return nil
}

// Use installs an already built zap logger (tests pass an observer core here).
func Use(l *zap.Logger, enabled map[string]bool) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	base = l
	categories = enabled
	loggers = make(map[Category]*Logger)
}

// Reset drops back to the no-op logger.
func Reset() {
	Use(nil, nil)
}

// IsCategoryEnabled returns whether a specific category is enabled.
// Categories missing from the map are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	if categories == nil {
		return true
	}
	enabled, exists := categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{sugar: zap.NewNop().Sugar()}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := &Logger{sugar: base.Named(string(category)).Sugar()}
	loggers[category] = l
	return l
}

// Zap returns the structured logger behind l.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying structured key/value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// ConfigDebug logs debug to the config category
func ConfigDebug(format string, args ...interface{}) {
	Get(CategoryConfig).Debug(format, args...)
}

// MemoryDebug logs debug to the memory category
func MemoryDebug(format string, args ...interface{}) {
	Get(CategoryMemory).Debug(format, args...)
}

// DNAWarn logs a warning to the dna category
func DNAWarn(format string, args ...interface{}) {
	Get(CategoryDNA).Warn(format, args...)
}

// DNADebug logs debug to the dna category
func DNADebug(format string, args ...interface{}) {
	Get(CategoryDNA).Debug(format, args...)
}

// Language logs to the language category
func Language(format string, args ...interface{}) {
	Get(CategoryLanguage).Info(format, args...)
}

// ReportDebug logs debug to the report category
func ReportDebug(format string, args ...interface{}) {
	Get(CategoryReport).Debug(format, args...)
}
