package contract

import (
	"testing"
	"time"

	"github.com/huangsam/satscout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError bool
	}{
		{
			name:        "valid minimal config",
			input:       &ConfigRawInput{Output: "text", Color: "yes"},
			expectError: false,
		},
		{
			name:        "invalid output format",
			input:       &ConfigRawInput{Output: "xml", Color: "yes"},
			expectError: true,
		},
		{
			name:        "parquet without output file",
			input:       &ConfigRawInput{Output: "parquet", Color: "yes"},
			expectError: true,
		},
		{
			name:        "parquet with output file",
			input:       &ConfigRawInput{Output: "parquet", OutputFile: "schools.parquet", Color: "yes"},
			expectError: false,
		},
		{
			name:        "invalid color",
			input:       &ConfigRawInput{Output: "text", Color: "maybe"},
			expectError: true,
		},
		{
			name:        "negative limit",
			input:       &ConfigRawInput{Output: "text", Color: "yes", Limit: -1},
			expectError: true,
		},
		{
			name:        "limit too large",
			input:       &ConfigRawInput{Output: "text", Color: "yes", Limit: MaxResultLimit + 1},
			expectError: true,
		},
		{
			name:        "negative width",
			input:       &ConfigRawInput{Output: "text", Color: "yes", Width: -5},
			expectError: true,
		},
		{
			name:        "directory url without scheme",
			input:       &ConfigRawInput{Output: "text", Color: "yes", DirectoryURL: "data.example.com/schools.json"},
			expectError: true,
		},
		{
			name:        "scores url with ftp scheme",
			input:       &ConfigRawInput{Output: "text", Color: "yes", ScoresURL: "ftp://data.example.com/sat.json"},
			expectError: true,
		},
		{
			name:        "invalid timeout",
			input:       &ConfigRawInput{Output: "text", Color: "yes", Timeout: "soon"},
			expectError: true,
		},
		{
			name:        "negative timeout",
			input:       &ConfigRawInput{Output: "text", Color: "yes", Timeout: "-1s"},
			expectError: true,
		},
		{
			name:        "invalid history backend",
			input:       &ConfigRawInput{Output: "text", Color: "yes", HistoryBackend: "redis"},
			expectError: true,
		},
		{
			name:        "mysql backend without connection string",
			input:       &ConfigRawInput{Output: "text", Color: "yes", HistoryBackend: "mysql"},
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			input: &ConfigRawInput{
				Output: "text", Color: "yes",
				HistoryBackend:   "mysql",
				HistoryDBConnect: "user:pass@tcp(localhost:3306)/satscout",
			},
			expectError: false,
		},
		{
			name:        "postgresql backend without connection string",
			input:       &ConfigRawInput{Output: "text", Color: "yes", HistoryBackend: "postgresql"},
			expectError: true,
		},
		{
			name:        "sqlite backend",
			input:       &ConfigRawInput{Output: "text", Color: "yes", HistoryBackend: "SQLite"},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{Color: "no"})
	require.NoError(t, err)

	assert.Equal(t, schema.DefaultDirectoryURL, cfg.DirectoryURL)
	assert.Equal(t, schema.DefaultScoresURL, cfg.ScoresURL)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.False(t, cfg.UseColors)
	assert.False(t, cfg.HistoryEnabled())
}

func TestProcessAndValidateOverrides(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{
		DirectoryURL:   " http://localhost:8080/schools.json ",
		ScoresURL:      "http://localhost:8080/sat.json",
		Timeout:        "15s",
		Output:         "JSON",
		Color:          "1",
		Filter:         "  bronx ",
		Limit:          20,
		HistoryBackend: "sqlite",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/schools.json", cfg.DirectoryURL)
	assert.Equal(t, "http://localhost:8080/sat.json", cfg.ScoresURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, "bronx", cfg.Filter)
	assert.Equal(t, 20, cfg.ResultLimit)
	assert.True(t, cfg.HistoryEnabled())
}

func TestHistoryEnabledNoneBackend(t *testing.T) {
	cfg := &Config{HistoryBackend: schema.NoneBackend}
	assert.False(t, cfg.HistoryEnabled())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(db:3306)/satscout", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@db/satscout", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(db:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db port=5432 dbname=satscout", false},
		{"postgres missing host", schema.PostgreSQLBackend, "port=5432 dbname=satscout", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=db port=5432", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = ParseTimeout("0")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = ParseTimeout("2m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = ParseTimeout("two minutes")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Filter: "brooklyn", ResultLimit: 5}
	clone := cfg.Clone()
	clone.Filter = "queens"
	assert.Equal(t, "brooklyn", cfg.Filter)
	assert.Equal(t, 5, clone.ResultLimit)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "satscout"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "satscout", profile.Prefix)
}
