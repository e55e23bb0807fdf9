package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafeGiantJacket/renewaldesk/config"
)

func TestNewRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand()

	expected := []string{
		"ingest", "score", "insights", "notes", "events",
		"sample", "serve", "config", "version",
	}
	for _, name := range expected {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestResolveOutputFormat_FlagWins(t *testing.T) {
	globalOutput = "json"
	t.Cleanup(func() { globalOutput = "" })

	cfg := config.DefaultConfig()
	cfg.OutputFormat = config.OutputFormatYAML

	format, err := resolveOutputFormat(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatJSON, format)
}

func TestResolveOutputFormat_FallsBackToConfig(t *testing.T) {
	globalOutput = ""

	cfg := config.DefaultConfig()
	cfg.OutputFormat = config.OutputFormatYAML

	format, err := resolveOutputFormat(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatYAML, format)
}

func TestResolveOutputFormat_Invalid(t *testing.T) {
	globalOutput = "xml"
	t.Cleanup(func() { globalOutput = "" })

	_, err := resolveOutputFormat(nil)
	assert.Error(t, err)
}

func TestResolveOutputFormat_NilConfigDefaultsToText(t *testing.T) {
	globalOutput = ""

	format, err := resolveOutputFormat(nil)
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatText, format)
}

func TestParseEventDate(t *testing.T) {
	for _, value := range []string{"2026-10-01", "2026-10-01 14:30", "2026-10-01T14:30:00Z"} {
		_, err := parseEventDate(value)
		assert.NoError(t, err, value)
	}

	_, err := parseEventDate("01/10/2026")
	assert.Error(t, err)
}

func TestReadInputFile_Missing(t *testing.T) {
	_, err := readInputFile("/nonexistent/input.csv")
	assert.Error(t, err)
}
