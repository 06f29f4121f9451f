// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets BLOGCTL_CFG to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("BLOGCTL_CFG", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Contains(t, cfg.Data, "host")
				assert.Equal(t, "https://blog.example.com", cfg.Data["host"])
				assert.Equal(t, "text", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				pq, ok := cfg.Data["pq"].(map[string]interface{})
				assert.True(t, ok, "pq should be a map")
				assert.Equal(t, "json", pq["output"])
				assert.Equal(t, 25, pq["limit"])
				colors, ok := cfg.Data["colors"].(map[string]interface{})
				assert.True(t, ok, "colors should be a map")
				assert.Equal(t, "#f6be00", colors["title"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "blogctl", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["titles"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()
	_, err := Load()
	assert.NoError(t, err)

	tests := []struct {
		name       string
		key        string
		defaultVal []string
		want       string
		wantErr    bool
	}{
		{
			name: "top level key",
			key:  "host",
			want: "https://blog.example.com",
		},
		{
			name: "nested key",
			key:  "pq.output",
			want: "json",
		},
		{
			name: "nested color key",
			key:  "colors.title",
			want: "#f6be00",
		},
		{
			name:    "missing key without default",
			key:     "nope",
			wantErr: true,
		},
		{
			name:       "missing key with default",
			key:        "nope",
			defaultVal: []string{"fallback"},
			want:       "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetString(tt.key, tt.defaultVal...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringNamespaced(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()

	_, err := Load("pq")
	assert.NoError(t, err)

	// Namespaced lookup should prefer pq.output over the top-level output.
	got, err := GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "json", got)
}

func TestGetInt(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()
	_, err := Load()
	assert.NoError(t, err)

	got, err := GetInt("pq.limit")
	assert.NoError(t, err)
	assert.Equal(t, 25, got)

	got, err = GetInt("missing", 42)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = GetInt("missing")
	assert.Error(t, err)
}

func TestGetStringSlice(t *testing.T) {
	cleanup := setupTestConfig(t, "mixed-types.yaml")
	defer cleanup()
	_, err := Load()
	assert.NoError(t, err)

	got, err := GetStringSlice("tags")
	assert.NoError(t, err)
	assert.Equal(t, []string{"go", "cli"}, got)

	_, err = GetStringSlice("name")
	assert.Error(t, err)
}
