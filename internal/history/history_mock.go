package history

import (
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetLookupStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetLookupStore() contract.LookupStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.LookupStore)
	return store
}

// MockLookupStore is a mock implementation of LookupStore for testing.
type MockLookupStore struct {
	mock.Mock
}

var _ contract.LookupStore = &MockLookupStore{} // Compile-time check

// RecordLookup implements the LookupStore interface.
func (m *MockLookupStore) RecordLookup(record schema.LookupRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

// GetStatus implements the LookupStore interface.
func (m *MockLookupStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllLookups implements the LookupStore interface.
func (m *MockLookupStore) GetAllLookups() ([]schema.LookupRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.LookupRecord)
	return records, args.Error(1)
}

// Close implements the LookupStore interface.
func (m *MockLookupStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
