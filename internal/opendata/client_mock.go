package opendata

import (
	"context"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"
	"github.com/stretchr/testify/mock"
)

// MockSchoolsClient is a mock implementation of SchoolsClient for testing.
type MockSchoolsClient struct {
	mock.Mock
}

var _ contract.SchoolsClient = &MockSchoolsClient{} // Compile-time check

// FetchSchoolsOutcome implements the SchoolsClient interface.
func (m *MockSchoolsClient) FetchSchoolsOutcome(ctx context.Context) ([]schema.School, schema.FetchOutcome) {
	args := m.Called(ctx)
	schools, _ := args.Get(0).([]schema.School)
	return schools, args.Get(1).(schema.FetchOutcome)
}

// FetchScoreOutcome implements the SchoolsClient interface.
func (m *MockSchoolsClient) FetchScoreOutcome(ctx context.Context, dbn string) (*schema.Score, schema.FetchOutcome) {
	args := m.Called(ctx, dbn)
	score, _ := args.Get(0).(*schema.Score)
	return score, args.Get(1).(schema.FetchOutcome)
}
