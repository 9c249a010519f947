//go:build basic

package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolsCSV(t *testing.T) {
	api := newFakeAPI(t)
	res, err := runSatscout(t, api, nil, "", "schools", "--output", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(res.stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "rank", rows[0][0])
	// Sorted by name
	assert.Equal(t, "02M260", rows[1][1])
	assert.Equal(t, "01M292", rows[2][1])
	assert.Equal(t, "08X282", rows[3][1])
	assert.Contains(t, res.stderr, "Directory:", "header goes to stderr")
}

func TestScoreText(t *testing.T) {
	api := newFakeAPI(t)
	res, err := runSatscout(t, api, nil, "", "score", "01M292")
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "Henry Street School for International Studies (01M292)")
	assert.Contains(t, res.stdout, "Test takers: 29")
	assert.Contains(t, res.stdout, "Low")
	assert.Contains(t, res.stdout, "openstreetmap.org")
}

func TestScoreNoData(t *testing.T) {
	api := newFakeAPI(t)

	for _, dbn := range []string{"08X282", "02M260", "99X999"} {
		t.Run(dbn, func(t *testing.T) {
			res, err := runSatscout(t, api, nil, "", "score", dbn)
			require.NoError(t, err)
			assert.Contains(t, res.stdout, "No data found")
		})
	}
}

func TestScoreJSONKeepsFailureReason(t *testing.T) {
	api := newFakeAPI(t)
	res, err := runSatscout(t, api, nil, "", "score", "99X999", "--output", "json")
	require.NoError(t, err)

	var out struct {
		Outcome struct {
			Status string `json:"status"`
			Reason string `json:"reason"`
		} `json:"outcome"`
		HasData bool `json:"has_data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "failed", out.Outcome.Status)
	assert.Contains(t, out.Outcome.Reason, "500")
	assert.False(t, out.HasData)
}

func TestBrowse(t *testing.T) {
	api := newFakeAPI(t)
	res, err := runSatscout(t, api, nil, "2\n", "browse")
	require.NoError(t, err)

	assert.Contains(t, res.stdout, "Loading Henry Street School for International Studies (01M292)")
	assert.Contains(t, res.stdout, "Test takers: 29")
}

func TestHistorySQLiteRoundTrip(t *testing.T) {
	api := newFakeAPI(t)
	dbFile := filepath.Join(t.TempDir(), "history.db")
	env := []string{"SATSCOUT_HISTORY_BACKEND=sqlite", "SATSCOUT_HISTORY_DB_CONNECT=" + dbFile}

	_, err := runSatscout(t, api, env, "", "history", "migrate")
	require.NoError(t, err)

	for _, dbn := range []string{"01M292", "02M260", "99X999"} {
		_, err = runSatscout(t, api, env, "", "score", dbn)
		require.NoError(t, err)
	}

	res, err := runSatscout(t, api, env, "", "history", "status")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "sqlite")

	exportFile := filepath.Join(t.TempDir(), "lookups.parquet")
	res, err = runSatscout(t, api, env, "", "history", "export", "--output-file", exportFile)
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Exported 3 lookups")

	info, err := os.Stat(exportFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = runSatscout(t, api, env, "", "history", "clear")
	require.NoError(t, err)
	_, err = os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err))
}
