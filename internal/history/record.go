package history

import (
	"math"
	"time"

	"github.com/huangsam/satscout/schema"
)

// NewLookupRecord converts a score lookup into a row for the lookup store.
func NewLookupRecord(result schema.ScoreResult, dbn string, lookupTime time.Time, duration time.Duration) schema.LookupRecord {
	record := schema.LookupRecord{
		DBN:        dbn,
		LookupTime: lookupTime,
		DurationMs: clampInt32(duration.Milliseconds()),
		Outcome:    result.Outcome.Status,
	}
	if result.School != nil && result.School.Name != "" {
		record.SchoolName = ptr(result.School.Name)
	}
	if result.Outcome.Reason != "" {
		record.Reason = ptr(result.Outcome.Reason)
	}
	if s := result.Score; s != nil {
		record.TestTakers = clampInt32(int64(s.TestTakers))
		record.Reading = clampInt32(int64(s.Reading))
		record.Math = clampInt32(int64(s.Math))
		record.Writing = clampInt32(int64(s.Writing))
		if s.HasData() {
			record.ReadingTier = ptr(string(s.ReadingTier))
			record.MathTier = ptr(string(s.MathTier))
			record.WritingTier = ptr(string(s.WritingTier))
		}
	}
	return record
}

// clampInt32 saturates v to the range of the int32 history columns.
func clampInt32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

func ptr[T any](v T) *T {
	return &v
}
