// Package core has core logic for listing schools and looking up their scores.
package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/huangsam/satscout/core/algo"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/outwriter"
	"github.com/huangsam/satscout/schema"
	"golang.org/x/sync/errgroup"
)

// ExecutorFunc defines the function signature for commands that only need the directory.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient, mgr contract.HistoryManager) error

var _ ExecutorFunc = ExecuteSchools // Compile-time check

// ErrMissingDBN is returned when a score lookup has no school identifier.
var ErrMissingDBN = errors.New("a school DBN is required")

// ExecuteSchools fetches the directory and prints the (filtered, limited) school list.
// It serves as the main entry point for the 'schools' command.
func ExecuteSchools(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient, _ contract.HistoryManager) error {
	start := time.Now()
	result := loadDirectory(ctx, cfg, client)
	return outwriter.WriteSchools(result, cfg, time.Since(start))
}

// ExecuteScore fetches the directory entry and the score for one school concurrently
// and prints the score detail. It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient, mgr contract.HistoryManager, dbn string) error {
	result, err := GetScoreResult(ctx, client, mgr, dbn)
	if err != nil {
		return err
	}
	if result.Outcome.Status == schema.FetchFailed {
		contract.LogWarn("Score lookup failed", outcomeError(result.Outcome))
	}
	return outwriter.WriteScore(result, cfg)
}

// GetSchoolsResult fetches the directory and applies the filter and limit of cfg.
func GetSchoolsResult(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient) schema.DirectoryResult {
	return loadDirectory(ctx, cfg, client)
}

// GetScoreResult looks up the score for one school, filling in its directory entry
// when the directory is reachable, and records the lookup in history.
func GetScoreResult(ctx context.Context, client contract.SchoolsClient, mgr contract.HistoryManager, dbn string) (schema.ScoreResult, error) {
	dbn = strings.TrimSpace(dbn)
	if dbn == "" {
		return schema.ScoreResult{}, ErrMissingDBN
	}

	var (
		school   = schema.School{DBN: dbn}
		schools  []schema.School
		outcome  schema.FetchOutcome
		scoreRes timedResult
	)
	var g errgroup.Group
	g.Go(func() error {
		schools, outcome = client.FetchSchoolsOutcome(ctx)
		return nil
	})
	g.Go(func() error {
		scoreRes = fetchScore(ctx, client, school)
		return nil
	})
	_ = g.Wait()

	if entry, ok := findSchool(schools, dbn); ok {
		school = entry
		// The score endpoint matches the DBN exactly
		if entry.DBN != dbn {
			scoreRes = fetchScore(ctx, client, entry)
		}
	} else if !outcome.OK() {
		contract.LogWarn("School directory unavailable", outcomeError(outcome))
	}
	scoreRes.School = &school
	recordLookup(ctx, mgr, scoreRes)
	return scoreRes.ScoreResult, nil
}

// loadDirectory fetches the school directory and applies the filter and limit.
func loadDirectory(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient) schema.DirectoryResult {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogDirectoryHeader(cfg)
	}

	schools, outcome := client.FetchSchoolsOutcome(ctx)
	if outcome.Status == schema.FetchFailed {
		contract.LogWarn("School directory unavailable", outcomeError(outcome))
	}

	filtered := make([]schema.School, 0, len(schools))
	for _, s := range schools {
		if contract.MatchesFilter(s, cfg.Filter) {
			filtered = append(filtered, s)
		}
	}
	return schema.DirectoryResult{
		Schools: algo.RankSchools(filtered, cfg.ResultLimit),
		Outcome: outcome,
	}
}

// findSchool returns the directory entry with the given DBN, ignoring case.
func findSchool(schools []schema.School, dbn string) (schema.School, bool) {
	for _, s := range schools {
		if strings.EqualFold(s.DBN, dbn) {
			return s, true
		}
	}
	return schema.School{}, false
}

// outcomeError turns a failed outcome into an error for logging.
func outcomeError(outcome schema.FetchOutcome) error {
	if outcome.Reason == "" {
		return errors.New(string(outcome.Status))
	}
	return errors.New(outcome.Reason)
}
