package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hunter-system/hunter/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("quest expired", zap.String("hunter_id", "h1"))
	require.NoError(t, closeFn())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "quest expired")
	assert.Contains(t, out, "hunter_id")
}

func TestNew_FileIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hunter.log")
	log, closeFn, err := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info("rank changed", zap.String("to", "D"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "rank changed", entry["msg"])
	assert.Equal(t, "D", entry["to"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "verbose"}, nil)
	assert.Error(t, err)
}
