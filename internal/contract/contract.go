// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/satscout/schema"
)

// SchoolsClient defines the operations against the remote school data API.
// This allows the core logic to be tested without reaching the network.
type SchoolsClient interface {
	// FetchSchoolsOutcome returns the full school directory along with how the fetch ended.
	FetchSchoolsOutcome(ctx context.Context) ([]schema.School, schema.FetchOutcome)

	// FetchScoreOutcome returns the classified score for a school along with how the fetch ended.
	// The score is nil unless the outcome is ok.
	FetchScoreOutcome(ctx context.Context, dbn string) (*schema.Score, schema.FetchOutcome)
}

// HistoryManager defines the interface for managing history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetLookupStore() LookupStore
}

// LookupStore defines the interface for recording score lookups.
// Records are an audit trail and are never used to answer a lookup.
type LookupStore interface {
	// RecordLookup stores one lookup and returns its unique ID
	RecordLookup(record schema.LookupRecord) (int64, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllLookups returns every recorded lookup ordered by ID
	GetAllLookups() ([]schema.LookupRecord, error)

	// Close closes the underlying connection
	Close() error
}
