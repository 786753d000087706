package loader

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/data/dedup"
	"github.com/penwyp/go-claude-statusline/internal/data/parser"
	"github.com/penwyp/go-claude-statusline/internal/data/scanner"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// Options controls one load
type Options struct {
	// BaseDirs are project roots, each holding <project>/<session>.jsonl
	BaseDirs []string
	// SessionID names the session whose records survive the cutoff
	SessionID string
	// Cutoff drops timestamped records older than it; zero keeps everything
	Cutoff      time.Time
	Concurrency int
}

// Result is the merged, deduplicated record stream sorted by timestamp.
// Records without a timestamp sort first.
type Result struct {
	Records      []model.UsageRecord
	Files        int
	FailedFiles  int
	SkippedLines int
	Duplicates   int
	// Keys is the number of distinct dedup keys seen
	Keys         int
	BeforeCutoff int
	// Cutoff is the block boundary records were actually dropped before;
	// zero when nothing was dropped
	Cutoff       time.Time
}

// Load discovers and parses every log file under opts.BaseDirs. Parsing runs
// in parallel; deduplication then walks files in discovery order so the
// surviving copy of a duplicate does not depend on scheduling.
func Load(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	files := lo.FlatMap(opts.BaseDirs, func(dir string, _ int) []string {
		return scanner.NewFileScanner(dir).Scan()
	})
	result := &Result{Files: len(files)}

	slots := make([][]model.UsageRecord, len(files))
	for r := range parser.NewParser(concurrency).ParseFiles(ctx, files) {
		if r.Error != nil {
			result.FailedFiles++
		}
		result.SkippedLines += r.Skipped
		slots[r.Index] = r.Records
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	util.LogDebug(fmt.Sprintf("Parsed %d files (%d failed, %d lines skipped) in %v",
		len(files), result.FailedFiles, result.SkippedLines, time.Since(start)))

	d := dedup.New()
	var records []model.UsageRecord
	for _, slot := range slots {
		unique := d.Filter(slot)
		result.Duplicates += len(slot) - len(unique)
		records = append(records, unique...)
	}
	result.Keys = d.Len()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	if !opts.Cutoff.IsZero() {
		result.Cutoff = blockBoundary(records, opts.Cutoff)
	}
	if !result.Cutoff.IsZero() {
		before := len(records)
		records = lo.Filter(records, func(r model.UsageRecord, _ int) bool {
			return !r.HasTimestamp() || !r.Timestamp.Before(result.Cutoff) || r.SessionID == opts.SessionID
		})
		result.BeforeCutoff = before - len(records)
	}
	result.Records = records

	util.LogDebug("Loaded usage records",
		util.F("records", len(records)),
		util.F("duplicates", result.Duplicates),
		util.F("keys", result.Keys),
		util.F("before_cutoff", result.BeforeCutoff),
		util.F("cutoff", result.Cutoff),
		util.F("duration", time.Since(start).String()))
	return result, nil
}

// Cutoff returns the earlier of (start of today - 5h) and (now - 10h). Nothing
// before it belongs to today's total. Load moves it back to a block boundary
// so the active block is assembled from its whole chain.
func Cutoff(now, todayStart time.Time) time.Time {
	a := todayStart.Add(-constants.TodayLookback)
	b := now.Add(-constants.RecentLookback)
	if a.Before(b) {
		return a
	}
	return b
}

// blockBoundary returns the timestamp of the latest record that follows a gap
// longer than a session and whose predecessor is before cutoff. Such a record
// always starts a new block, so nothing earlier can join a later block and
// everything dropped is older than cutoff. Records must be sorted.
func blockBoundary(records []model.UsageRecord, cutoff time.Time) time.Time {
	var boundary, prev time.Time
	for _, r := range records {
		if !r.HasTimestamp() {
			continue
		}
		if !prev.IsZero() {
			if !prev.Before(cutoff) {
				break
			}
			if r.Timestamp.Sub(prev) > constants.SessionDuration {
				boundary = r.Timestamp
			}
		}
		prev = r.Timestamp
	}
	return boundary
}
