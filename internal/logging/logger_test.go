package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level, enabled map[string]bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	Use(zap.New(core), enabled)
	t.Cleanup(Reset)
	return logs
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestCategoryLoggerNamesAndLevels(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, nil)

	Get(CategoryEngine).Info("step %d", 7)
	Get(CategoryEngine).Debug("dropped below level")
	Language("acquired at %d", 40)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, "step 7", entries[0].Message)
	assert.Equal(t, "language", entries[1].LoggerName)
}

func TestDisabledCategoryIsSilent(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel, map[string]bool{"dna": false, "memory": true})

	assert.False(t, IsCategoryEnabled(CategoryDNA))
	assert.True(t, IsCategoryEnabled(CategoryMemory))
	assert.True(t, IsCategoryEnabled(CategoryReport), "unlisted categories default to enabled")

	DNAWarn("overflow %v", 99.0)
	MemoryDebug("visible")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "visible", logs.All()[0].Message)
}

func TestHelpersRouteToCategories(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel, nil)

	ConfigDebug("resolved %s", "dna")
	MemoryDebug("full at %d", 100)
	DNAWarn("extreme %g", -99.0)
	DNADebug("mixed #%d", 11)
	Language("acquired")
	ReportDebug("raw fallback")

	tests := []struct {
		name  string
		level zapcore.Level
		msg   string
	}{
		{"config", zapcore.DebugLevel, "resolved dna"},
		{"memory", zapcore.DebugLevel, "full at 100"},
		{"dna", zapcore.WarnLevel, "extreme -99"},
		{"dna", zapcore.DebugLevel, "mixed #11"},
		{"language", zapcore.InfoLevel, "acquired"},
		{"report", zapcore.DebugLevel, "raw fallback"},
	}
	entries := logs.All()
	require.Len(t, entries, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.name, entries[i].LoggerName)
		assert.Equal(t, tt.level, entries[i].Level)
		assert.Equal(t, tt.msg, entries[i].Message)
	}
}

func TestGetCachesLoggers(t *testing.T) {
	observe(t, zapcore.InfoLevel, nil)
	assert.Same(t, Get(CategoryReport), Get(CategoryReport))
}

func TestWithAddsContext(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, nil)

	Get(CategoryEngine).With("run", "abc").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["run"])
}

func TestInitializeFormats(t *testing.T) {
	t.Cleanup(Reset)
	require.NoError(t, Initialize(Config{Level: "debug", Format: "console"}))
	require.NoError(t, Initialize(Config{Level: "warn", Format: "json"}))
	assert.True(t, Get(CategoryBoot).Zap().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Get(CategoryBoot).Zap().Core().Enabled(zapcore.InfoLevel))
}

func TestAuditEvents(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, nil)

	a := Audit("run-1")
	a.RunStart("dna", "all", 100)
	a.MixedState(12, "pain", -1, 79.2, 100)
	a.Emergence(40, 0.31, 0.9)
	a.LanguageAcquired(40, 0.31)
	a.RunInterrupted(50, errors.New("context canceled"))
	a.RunEnd(100, 33, 0.6)

	entries := logs.FilterLoggerName("audit").All()
	require.Len(t, entries, 6)

	mixed := entries[1].ContextMap()
	assert.Equal(t, "mixed_state", mixed["event"])
	assert.Equal(t, "run-1", mixed["run"])
	assert.Equal(t, int64(12), mixed["step"])
	assert.Equal(t, 79.2, mixed["mixed"])
	assert.Equal(t, "pain", mixed["stimulus"])

	assert.Equal(t, "context canceled", entries[4].ContextMap()["error"])
}
