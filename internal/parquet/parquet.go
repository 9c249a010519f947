// Package parquet provides data structures and functions for exporting satscout
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/satscout/schema"
	"github.com/parquet-go/parquet-go"
)

// Lookup represents a single recorded score lookup.
// This struct maps to the satscout_lookups database table.
type Lookup struct {
	// LookupID is the unique identifier for this lookup
	LookupID int64 `parquet:"lookup_id,snappy"`

	// DBN identifies the school that was looked up
	DBN string `parquet:"dbn,snappy"`

	// SchoolName is the display name at lookup time (nullable)
	SchoolName *string `parquet:"school_name,optional,snappy"`

	// LookupTime is when the lookup started (stored as TIMESTAMP with nanosecond precision)
	LookupTime time.Time `parquet:"lookup_time,snappy"`

	// DurationMs is the round trip time of the score request
	DurationMs int32 `parquet:"duration_ms,snappy"`

	// Outcome is one of ok, empty or failed
	Outcome string `parquet:"outcome,snappy"`

	// Reason explains a failed outcome (nullable)
	Reason *string `parquet:"reason,optional,snappy"`

	TestTakers int32 `parquet:"test_takers,snappy"`
	Reading    int32 `parquet:"reading_score,snappy"`
	Math       int32 `parquet:"math_score,snappy"`
	Writing    int32 `parquet:"writing_score,snappy"`

	// Tiers are only present when the school reported test takers
	ReadingTier *string `parquet:"reading_tier,optional,snappy"`
	MathTier    *string `parquet:"math_tier,optional,snappy"`
	WritingTier *string `parquet:"writing_tier,optional,snappy"`
}

// School represents one directory entry.
type School struct {
	DBN       string   `parquet:"dbn,snappy"`
	Name      string   `parquet:"school_name,snappy"`
	Location  string   `parquet:"location,snappy"`
	Latitude  *float64 `parquet:"latitude,optional,snappy"`
	Longitude *float64 `parquet:"longitude,optional,snappy"`
	Borough   *string  `parquet:"borough,optional,snappy"`
}

// WriteLookupsParquet writes a slice of Lookup structs to a Parquet file.
func WriteLookupsParquet(data []Lookup, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteSchoolsParquet writes a slice of School structs to w.
func WriteSchoolsParquet(data []School, w io.Writer) error {
	return write(data, w)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(data, file)
}

// write derives the schema from T's struct tags and writes all rows.
func write[T any](data []T, w io.Writer) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertLookupRecords converts schema.LookupRecord slice to Lookup slice.
func ConvertLookupRecords(records []schema.LookupRecord) []Lookup {
	result := make([]Lookup, len(records))
	for i, r := range records {
		result[i] = Lookup{
			LookupID:    r.LookupID,
			DBN:         r.DBN,
			SchoolName:  r.SchoolName,
			LookupTime:  r.LookupTime,
			DurationMs:  r.DurationMs,
			Outcome:     string(r.Outcome),
			Reason:      r.Reason,
			TestTakers:  r.TestTakers,
			Reading:     r.Reading,
			Math:        r.Math,
			Writing:     r.Writing,
			ReadingTier: r.ReadingTier,
			MathTier:    r.MathTier,
			WritingTier: r.WritingTier,
		}
	}
	return result
}

// ConvertSchools converts directory entries to School rows.
// Coordinates that do not parse are written as nulls.
func ConvertSchools(schools []schema.School) []School {
	result := make([]School, len(schools))
	for i, s := range schools {
		row := School{DBN: s.DBN, Name: s.Name, Location: s.Location}
		if c, ok := s.Coordinates(); ok {
			row.Latitude, row.Longitude = &c.Lat, &c.Lon
		}
		if s.Borough != "" {
			borough := s.Borough
			row.Borough = &borough
		}
		result[i] = row
	}
	return result
}
