package logrus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist-api/pkg/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Output: &buf})

	logger.Info("Share created", map[string]interface{}{
		"code":          "ABC123",
		"product_count": 2,
	})
	logger.Error("Share sweep failed", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "Share created", lines[0]["msg"])
	assert.Equal(t, "ABC123", lines[0]["code"])
	assert.Equal(t, float64(2), lines[0]["product_count"])
	assert.Contains(t, lines[0], "time")

	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"debug", "info", "warning", "error"}},
		{"warn", []string{"warning", "error"}},
		{"error", []string{"error"}},
		{"nonsense", []string{"info", "warning", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Options{Level: tt.level, Output: &buf})

			logger.Debug("d", nil)
			logger.Info("i", nil)
			logger.Warn("w", nil)
			logger.Error("e", nil)

			var levels []string
			for _, line := range decodeLines(t, &buf) {
				levels = append(levels, line["level"].(string))
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	var buf bytes.Buffer
	logger := New(Options{Level: "info", File: path, MaxSizeMB: 1, Output: &buf})

	logger.Info("written twice", map[string]interface{}{"k": "v"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written twice")
	assert.Contains(t, buf.String(), "written twice")
}

func TestFromConfig(t *testing.T) {
	logger := FromConfig(config.LogConfig{Level: "warn"})
	require.NotNil(t, logger)
	assert.Equal(t, "warning", logger.logger.GetLevel().String())
	assert.NoError(t, logger.Close())
}
