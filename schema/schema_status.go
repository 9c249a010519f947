package schema

import "time"

// HistoryStatus represents the status of the lookup history store.
type HistoryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalLookups    int              `json:"total_lookups"`
	LastLookupID    int64            `json:"last_lookup_id"`
	LastLookupTime  time.Time        `json:"last_lookup_time"`
	OldestLookup    time.Time        `json:"oldest_lookup_time"`
	DistinctSchools int              `json:"distinct_schools"`
	FailedLookups   int              `json:"failed_lookups"`
	TableSizes      map[string]int64 `json:"table_sizes"`
	TableSizeBytes  int64            `json:"table_size_bytes"`
}

// LookupRecord represents a row from the satscout_lookups table.
type LookupRecord struct {
	LookupID    int64
	DBN         string
	SchoolName  *string
	LookupTime  time.Time
	DurationMs  int32
	Outcome     FetchStatus
	Reason      *string
	TestTakers  int32
	Reading     int32
	Math        int32
	Writing     int32
	ReadingTier *string
	MathTier    *string
	WritingTier *string
}
