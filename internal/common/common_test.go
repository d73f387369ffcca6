package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SARFLOW_TEST_DIR", "/tmp/sarflow")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain path", input: "/var/data/x.db", expected: "/var/data/x.db"},
		{name: "bare tilde", input: "~", expected: home},
		{name: "tilde prefix", input: "~/data/x.db", expected: filepath.Join(home, "data", "x.db")},
		{name: "env var", input: "$SARFLOW_TEST_DIR/x.db", expected: "/tmp/sarflow/x.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestUserError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	err := NewUserError("Cannot reach the analysis engine", base)

	assert.Contains(t, err.Error(), "Cannot reach the analysis engine")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "Cannot reach the analysis engine", UserMessage(err))
}

func TestUserMessageFallback(t *testing.T) {
	err := errors.New("raw failure")
	assert.Equal(t, "raw failure", UserMessage(err))
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "defaults", level: "", format: ""},
		{name: "debug json", level: "debug", format: "json"},
		{name: "warn console", level: "warn", format: "console"},
		{name: "bad level", level: "loud", format: "console", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetupLogger(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
