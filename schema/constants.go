package schema

// Custom string types for type safety.
type (
	// Tier represents the quality tier of a subject score.
	Tier string

	// OutputMode represents the format of the output.
	OutputMode string

	// FetchStatus represents how a fetch against the remote API ended.
	FetchStatus string

	// DatabaseBackend represents the database backend for lookup history.
	DatabaseBackend string

	// Subject names one of the three SAT sections.
	Subject string
)

// Quality tiers derived from a subject score.
const (
	LowTier    Tier = "Low"
	MediumTier Tier = "Medium"
	HighTier   Tier = "High"
)

// Tier thresholds. A score at a threshold belongs to the lower tier.
const (
	LowTierMax    = 450
	MediumTierMax = 650
)

// All subjects reported by the score endpoint.
const (
	ReadingSubject Subject = "reading"
	MathSubject    Subject = "math"
	WritingSubject Subject = "writing"
)

// AllSubjects lists subjects in display order.
var AllSubjects = []Subject{ReadingSubject, MathSubject, WritingSubject}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All fetch statuses.
const (
	FetchOK     FetchStatus = "ok"     // data present
	FetchEmpty  FetchStatus = "empty"  // request succeeded, nothing to show
	FetchFailed FetchStatus = "failed" // transport, status or decode error
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Default remote endpoints for the NYC Open Data sets.
const (
	DefaultDirectoryURL = "https://data.cityofnewyork.us/resource/s3k6-pzi2.json"
	DefaultScoresURL    = "https://data.cityofnewyork.us/resource/f9bf-2cp4.json"
)
