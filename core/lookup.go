package core

import (
	"context"
	"time"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/history"
	"github.com/huangsam/satscout/schema"
)

// timedResult is a score result with the timing needed for lookup history.
type timedResult struct {
	schema.ScoreResult
	start    time.Time
	duration time.Duration
}

// fetchScore fetches the score for a school and times the request.
func fetchScore(ctx context.Context, client contract.SchoolsClient, school schema.School) timedResult {
	start := time.Now()
	score, outcome := client.FetchScoreOutcome(ctx, school.DBN)
	s := school
	return timedResult{
		ScoreResult: schema.ScoreResult{School: &s, Score: score, Outcome: outcome},
		start:       start,
		duration:    time.Since(start),
	}
}

// recordLookup stores the lookup when history is enabled.
// Lookups canceled by a newer selection are not recorded.
func recordLookup(ctx context.Context, mgr contract.HistoryManager, tr timedResult) {
	if ctx.Err() != nil || mgr == nil {
		return
	}
	store := mgr.GetLookupStore()
	if store == nil {
		return
	}
	dbn := ""
	if tr.School != nil {
		dbn = tr.School.DBN
	}
	if _, err := store.RecordLookup(history.NewLookupRecord(tr.ScoreResult, dbn, tr.start, tr.duration)); err != nil {
		contract.LogWarn("Lookup history recording failed", err)
	}
}

// lookupScore fetches and records a score lookup.
func lookupScore(ctx context.Context, client contract.SchoolsClient, mgr contract.HistoryManager, school schema.School) schema.ScoreResult {
	tr := fetchScore(ctx, client, school)
	recordLookup(ctx, mgr, tr)
	return tr.ScoreResult
}
