package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("first\nsec"))
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "> first\n", out.String())

	_, err = pw.Write([]byte("ond\nthird"))
	require.NoError(t, err)
	require.Equal(t, "> first\n> second\n", out.String())

	require.NoError(t, pw.Flush())
	require.Equal(t, "> first\n> second\n> third", out.String())
	require.NoError(t, pw.Flush())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		level string
		json  bool
	}{
		{input: "debug", level: "debug"},
		{input: "json", level: "info", json: true},
		{input: "json:trace", level: "trace", json: true},
		{input: "json:", level: "info", json: true},
		{input: "", level: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, jsonFormat := ParseLevel(tt.input)
			require.Equal(t, tt.level, level)
			require.Equal(t, tt.json, jsonFormat)
		})
	}
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv("ASSET_LOG_LEVEL", "")
	t.Setenv("ASSET_PACKER_LOG_LEVEL", "")

	level, source := ResolveLogLevel("", "ASSET_PACKER_LOG_LEVEL")
	require.Equal(t, "info", level)
	require.Equal(t, "default", source)

	t.Setenv("ASSET_LOG_LEVEL", "warn")
	level, source = ResolveLogLevel("", "ASSET_PACKER_LOG_LEVEL")
	require.Equal(t, "warn", level)
	require.Equal(t, "ASSET_LOG_LEVEL", source)

	t.Setenv("ASSET_PACKER_LOG_LEVEL", "debug")
	level, source = ResolveLogLevel("", "ASSET_PACKER_LOG_LEVEL")
	require.Equal(t, "debug", level)
	require.Equal(t, "ASSET_PACKER_LOG_LEVEL", source)

	level, source = ResolveLogLevel("trace", "ASSET_PACKER_LOG_LEVEL")
	require.Equal(t, "trace", level)
	require.Equal(t, "CLI --log-level", source)
}

func TestNewLogger_Text(t *testing.T) {
	t.Setenv("ASSET_JSON_LOG", "")
	var out bytes.Buffer
	logger := NewLogger("asset-test", "info", &out)

	logger.Debug("hidden")
	logger.Info("packed", "assets", 2)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], Prefix))
	require.Contains(t, lines[0], "asset-test: packed: assets=2")
}

func TestNewLogger_JSON(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("asset-test", "json:debug", &out)
	logger.Debug("opened", "assets", 3)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	require.Equal(t, "opened", record["@message"])
	require.Equal(t, "asset-test", record["@module"])
	require.EqualValues(t, 3, record["assets"])
}

func TestNewToolLogger_ReportsLevelSource(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tool.log")
	t.Setenv("ASSET_LOG_PATH", logPath)
	t.Setenv("ASSET_JSON_LOG", "")
	t.Setenv("ASSET_LISTER_LOG_LEVEL", "debug")

	logger := NewToolLogger("asset-lister", "ASSET_LISTER_LOG_LEVEL", "")
	require.True(t, logger.IsDebug())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	out := string(data)
	require.True(t, strings.HasPrefix(out, Prefix), out)
	require.Contains(t, out, "Log level configured")
	require.Contains(t, out, "source=ASSET_LISTER_LOG_LEVEL")
}
