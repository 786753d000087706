package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/core/session"
	"github.com/penwyp/go-claude-statusline/internal/data/aggregator"
	"github.com/penwyp/go-claude-statusline/internal/data/loader"
	"github.com/penwyp/go-claude-statusline/internal/data/transcript"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// ErrNoDataDirs means no usable base directory was found, so no aggregate can be computed
var ErrNoDataDirs = errors.New("no usage data directories found")

type Config struct {
	// BaseDirs are project roots as returned by config.ResolveBaseDirs
	BaseDirs       []string
	SessionID      string
	TranscriptPath string
	ContextWindow  int64
	Concurrency    int
	// NoCutoff loads full history instead of only recent records
	NoCutoff bool
}

type Analyzer struct {
	config     *Config
	pricing    pricing.PricingProvider
	costs      *pricing.Calculator
	aggregator *aggregator.Aggregator
	metrics    *session.MetricsCalculator
	tp         *util.TimeProvider

	// Now is the clock; tests replace it
	Now func() time.Time
}

func New(config *Config, provider pricing.PricingProvider, tp *util.TimeProvider) *Analyzer {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if tp == nil {
		tp = util.GetTimeProvider()
	}

	costs := pricing.NewCalculator(provider)
	return &Analyzer{
		config:     config,
		pricing:    provider,
		costs:      costs,
		aggregator: aggregator.NewAggregator(costs, tp),
		metrics:    session.NewMetricsCalculator(costs),
		tp:         tp,
		Now:        time.Now,
	}
}

func (a *Analyzer) load(ctx context.Context, now time.Time) (*loader.Result, error) {
	opts := loader.Options{
		BaseDirs:    a.config.BaseDirs,
		SessionID:   a.config.SessionID,
		Concurrency: a.config.Concurrency,
	}
	if !a.config.NoCutoff {
		todayStart, _ := a.tp.DayBounds(now)
		opts.Cutoff = loader.Cutoff(now, todayStart)
	}
	return loader.Load(ctx, opts)
}

// Run computes one snapshot. Only a missing data directory is fatal; every
// other problem leaves the affected field unavailable.
func (a *Analyzer) Run(ctx context.Context) (*model.Snapshot, error) {
	startTime := time.Now()
	if len(a.config.BaseDirs) == 0 {
		return nil, ErrNoDataDirs
	}

	now := a.Now()
	snapshot := &model.Snapshot{GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)

	// Context usage reads only the transcript, so it overlaps with loading
	g.Go(func() error {
		snapshot.Context = a.contextUsage()
		return nil
	})

	g.Go(func() error {
		// Phase 1: Load, deduplicate and sort
		loadStart := time.Now()
		loaded, err := a.load(gctx, now)
		if err != nil {
			return fmt.Errorf("failed to load usage data: %w", err)
		}
		util.LogDebug("Phase 1 - Load",
			util.F("duration", time.Since(loadStart).String()),
			util.F("records", len(loaded.Records)),
			util.F("files", loaded.Files))

		// Phase 2: Independent aggregates
		aggStart := time.Now()
		records := loaded.Records
		inner, ictx := errgroup.WithContext(gctx)
		inner.Go(func() error {
			snapshot.TodayCost = a.aggregator.TodayCost(ictx, records, now)
			return nil
		})
		inner.Go(func() error {
			snapshot.SessionCost = a.aggregator.SessionCost(ictx, records, a.config.SessionID)
			return nil
		})
		inner.Go(func() error {
			blocks := session.BuildBlocks(records)
			if active := session.FindActive(blocks, now); active != nil {
				snapshot.ActiveBlock = a.metrics.Summarize(ictx, active, now)
			}
			return nil
		})
		err = inner.Wait()
		util.LogDebug("Phase 2 - Aggregation", util.F("duration", time.Since(aggStart).String()))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	util.LogDebug("Snapshot computed", util.F("duration", time.Since(startTime).String()))
	return snapshot, nil
}

func (a *Analyzer) contextUsage() *model.ContextUsage {
	if a.config.TranscriptPath == "" {
		return nil
	}
	usage, err := transcript.LoadContextUsage(a.config.TranscriptPath, a.config.ContextWindow)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Context usage unavailable: %v", err))
		return nil
	}
	return usage
}

// BlockReport is one reconstructed block with its derived metrics
type BlockReport struct {
	Summary *model.BlockSummary
	Active  bool
}

// Blocks reconstructs every session block in the loaded history.
func (a *Analyzer) Blocks(ctx context.Context) ([]BlockReport, error) {
	if len(a.config.BaseDirs) == 0 {
		return nil, ErrNoDataDirs
	}

	now := a.Now()
	loaded, err := a.load(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage data: %w", err)
	}

	blocks := session.BuildBlocks(loaded.Records)
	active := session.FindActive(blocks, now)

	reports := make([]BlockReport, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		reports = append(reports, BlockReport{
			Summary: a.metrics.Summarize(ctx, b, now),
			Active:  b == active,
		})
	}
	return reports, nil
}
