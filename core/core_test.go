package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/history"
	"github.com/huangsam/satscout/internal/opendata"
	"github.com/huangsam/satscout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSchools = []schema.School{
	{DBN: "21K728", Name: "Liberation Diploma Plus High School", Location: "2865 West 19th Street, Brooklyn, NY 11224"},
	{DBN: "02M260", Name: "Clinton School Writers & Artists", Location: "10 East 15th Street, Manhattan NY 10003", Latitude: "40.73653", Longitude: "-73.9927"},
	{DBN: "08X282", Name: "Women's Academy of Excellence", Location: "456 White Plains Road, Bronx NY 10473"},
}

var okOutcome = schema.FetchOutcome{Status: schema.FetchOK}

func testScore(dbn string) *schema.Score {
	return &schema.Score{
		DBN: dbn, TestTakers: 47, Reading: 461, Math: 412, Writing: 666,
		ReadingTier: schema.MediumTier, MathTier: schema.LowTier, WritingTier: schema.HighTier,
	}
}

func outputConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		DirectoryURL: "http://localhost/schools.json",
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), "out"),
		Width:        120,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(data)
}

func TestExecuteSchools(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)

	cfg := outputConfig(t, schema.JSONOut)
	cfg.ResultLimit = 2
	require.NoError(t, ExecuteSchools(context.Background(), cfg, client, nil))

	var out struct {
		Count   int             `json:"count"`
		Schools []schema.School `json:"schools"`
	}
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &out))
	assert.Equal(t, 2, out.Count)
	// Sorted by name and limited
	assert.Equal(t, "02M260", out.Schools[0].DBN)
	assert.Equal(t, "21K728", out.Schools[1].DBN)
	client.AssertExpectations(t)
}

func TestExecuteSchools_Filter(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)

	cfg := outputConfig(t, schema.CSVOut)
	cfg.Filter = "bronx"
	require.NoError(t, ExecuteSchools(context.Background(), cfg, client, nil))
	assert.Equal(t, 1, strings.Count(readOutput(t, cfg), "\n"), "header only: filter matches name or DBN, not location")

	cfg = outputConfig(t, schema.CSVOut)
	cfg.Filter = "08x"
	require.NoError(t, ExecuteSchools(context.Background(), cfg, client, nil))
	assert.Contains(t, readOutput(t, cfg), "Women's Academy")
}

func TestExecuteSchools_FetchFailed(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).
		Return([]schema.School{}, schema.FetchOutcome{Status: schema.FetchFailed, Reason: "request failed"})

	cfg := outputConfig(t, schema.TextOut)
	require.NoError(t, ExecuteSchools(context.Background(), cfg, client, nil))
	assert.Contains(t, readOutput(t, cfg), "No schools found")
}

func TestExecuteScore(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)
	client.On("FetchScoreOutcome", mock.Anything, "02M260").Return(testScore("02M260"), okOutcome)

	store := &history.MockLookupStore{}
	store.On("RecordLookup", mock.MatchedBy(func(r schema.LookupRecord) bool {
		return r.DBN == "02M260" && r.Outcome == schema.FetchOK && r.SchoolName != nil &&
			*r.SchoolName == "Clinton School Writers & Artists"
	})).Return(int64(1), nil)
	mgr := &history.MockHistoryManager{}
	mgr.On("GetLookupStore").Return(store)

	cfg := outputConfig(t, schema.TextOut)
	require.NoError(t, ExecuteScore(context.Background(), cfg, client, mgr, " 02M260 "))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Clinton School Writers & Artists (02M260)")
	assert.Contains(t, out, "openstreetmap.org")
	assert.Contains(t, out, "Test takers: 47")
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestExecuteScore_NoData(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)
	client.On("FetchScoreOutcome", mock.Anything, "21K728").Return(nil, schema.FetchOutcome{Status: schema.FetchEmpty})

	cfg := outputConfig(t, schema.TextOut)
	require.NoError(t, ExecuteScore(context.Background(), cfg, client, nil, "21K728"))

	out := readOutput(t, cfg)
	assert.Contains(t, out, contract.NoDataLabel)
	assert.Contains(t, out, contract.LocationUnavailableLabel)
}

func TestExecuteScore_DirectoryDown(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).
		Return([]schema.School{}, schema.FetchOutcome{Status: schema.FetchFailed, Reason: "unexpected response status: 503"})
	client.On("FetchScoreOutcome", mock.Anything, "02M260").Return(testScore("02M260"), okOutcome)

	cfg := outputConfig(t, schema.JSONOut)
	require.NoError(t, ExecuteScore(context.Background(), cfg, client, nil, "02M260"))

	out := readOutput(t, cfg)
	assert.Contains(t, out, `"has_data": true`)
	assert.NotContains(t, out, "map_url")
}

func TestExecuteScore_MissingDBN(t *testing.T) {
	err := ExecuteScore(context.Background(), &contract.Config{}, &opendata.MockSchoolsClient{}, nil, "  ")
	assert.ErrorIs(t, err, ErrMissingDBN)
}

func TestLookupScore_RecordingErrorIsNotFatal(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchScoreOutcome", mock.Anything, "02M260").Return(testScore("02M260"), okOutcome)
	store := &history.MockLookupStore{}
	store.On("RecordLookup", mock.Anything).Return(int64(0), errors.New("disk full"))
	mgr := &history.MockHistoryManager{}
	mgr.On("GetLookupStore").Return(store)

	result := lookupScore(context.Background(), client, mgr, testSchools[1])
	assert.True(t, result.Outcome.OK())
	assert.Equal(t, "02M260", result.School.DBN)
	store.AssertExpectations(t)
}

func TestLookupScore_CanceledNotRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &opendata.MockSchoolsClient{}
	client.On("FetchScoreOutcome", mock.Anything, "02M260").
		Return(nil, schema.FetchOutcome{Status: schema.FetchFailed, Reason: "context canceled"})
	mgr := &history.MockHistoryManager{}

	result := lookupScore(ctx, client, mgr, testSchools[1])
	assert.Equal(t, schema.FetchFailed, result.Outcome.Status)
	mgr.AssertNotCalled(t, "GetLookupStore")
}

func TestExecuteBrowse(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)
	client.On("FetchScoreOutcome", mock.Anything, "08X282").Return(testScore("08X282"), okOutcome)

	cfg := &contract.Config{Output: schema.TextOut, Width: 120}
	// Rank 3 after sorting by name
	in := strings.NewReader("3\n")
	var out bytes.Buffer
	require.NoError(t, ExecuteBrowse(context.Background(), cfg, client, nil, in, &out))

	text := out.String()
	assert.Contains(t, text, "Loading Women's Academy of Excellence (08X282)")
	assert.Contains(t, text, "Women's Academy of Excellence (08X282)")
	assert.Contains(t, text, "Test takers: 47")
}

func TestExecuteBrowse_UnknownAndQuit(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)

	in := strings.NewReader("\n99\nzzz\nq\n3\n")
	var out bytes.Buffer
	require.NoError(t, ExecuteBrowse(context.Background(), &contract.Config{Width: 120}, client, nil, in, &out))

	text := out.String()
	assert.Contains(t, text, `No school matches "99"`)
	assert.Contains(t, text, `No school matches "zzz"`)
	assert.NotContains(t, text, "Loading", "input after q is ignored")
	client.AssertNotCalled(t, "FetchScoreOutcome", mock.Anything, mock.Anything)
}

func TestExecuteBrowse_EmptyDirectory(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return([]schema.School{}, schema.FetchOutcome{Status: schema.FetchEmpty})

	var out bytes.Buffer
	require.NoError(t, ExecuteBrowse(context.Background(), &contract.Config{}, client, nil, strings.NewReader("1\n"), &out))
	assert.Equal(t, "No schools found\n", out.String())
}

func TestResolveSelection(t *testing.T) {
	school, ok := resolveSelection(testSchools, "1")
	assert.True(t, ok)
	assert.Equal(t, "21K728", school.DBN)

	school, ok = resolveSelection(testSchools, "02m260")
	assert.True(t, ok)
	assert.Equal(t, "02M260", school.DBN)

	_, ok = resolveSelection(testSchools, "0")
	assert.False(t, ok)
	_, ok = resolveSelection(testSchools, "-1")
	assert.False(t, ok)
}

func TestGetScoreResult_LowercaseDBN(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)
	// The score endpoint only knows the directory's spelling
	client.On("FetchScoreOutcome", mock.Anything, "02m260").Return(nil, schema.FetchOutcome{Status: schema.FetchEmpty})
	client.On("FetchScoreOutcome", mock.Anything, "02M260").Return(testScore("02M260"), okOutcome)

	store := &history.MockLookupStore{}
	store.On("RecordLookup", mock.MatchedBy(func(r schema.LookupRecord) bool {
		return r.DBN == "02M260" && r.Outcome == schema.FetchOK
	})).Return(int64(1), nil)
	mgr := &history.MockHistoryManager{}
	mgr.On("GetLookupStore").Return(store)

	result, err := GetScoreResult(context.Background(), client, mgr, "02m260")
	require.NoError(t, err)
	require.NotNil(t, result.School)
	assert.Equal(t, "02M260", result.School.DBN)
	assert.Equal(t, "Clinton School Writers & Artists", result.School.Name, "directory match ignores case")
	assert.True(t, result.Outcome.OK())
	assert.True(t, result.Score.HasData())
	client.AssertCalled(t, "FetchScoreOutcome", mock.Anything, "02M260")
	store.AssertExpectations(t)
}

func TestGetScoreResult_ExactDBNFetchesOnce(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)
	client.On("FetchScoreOutcome", mock.Anything, "08X282").Return(testScore("08X282"), okOutcome)

	result, err := GetScoreResult(context.Background(), client, nil, "08X282")
	require.NoError(t, err)
	assert.Equal(t, schema.HighTier, result.Score.WritingTier)
	client.AssertNumberOfCalls(t, "FetchScoreOutcome", 1)
}

func TestGetSchoolsResult(t *testing.T) {
	client := &opendata.MockSchoolsClient{}
	client.On("FetchSchoolsOutcome", mock.Anything).Return(testSchools, okOutcome)

	result := GetSchoolsResult(WithSuppressHeader(context.Background()), &contract.Config{Filter: "school"}, client)
	assert.True(t, result.Outcome.OK())
	require.Len(t, result.Schools, 2)
	assert.Equal(t, "02M260", result.Schools[0].DBN)
}
