package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// observation holds everything derived from a project directory in one scan
type observation struct {
	Name    string
	Path    string
	Types   []string
	Version *string
	Git     *VcsStatus
	Hash    string
}

// Scanner discovers projects under a root and reconciles them with the
// state of the previous scan
type Scanner struct {
	root       string
	maxDepth   int
	analyzer   Analyzer
	limiter    *rate.Limiter
	gitTimeout time.Duration
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// newScanner returns a scanner for cfg. A nil analyzer disables analysis;
// previous analyses are then carried over unchanged
func newScanner(cfg *Config, analyzer Analyzer, logger *slog.Logger) *Scanner {
	limit := rate.Inf
	if cfg.AnalysisDelay > 0 {
		limit = rate.Every(cfg.AnalysisDelay)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{
		root:       cfg.ProjectsDirectory,
		maxDepth:   cfg.ScanDepth,
		analyzer:   analyzer,
		limiter:    rate.NewLimiter(limit, 1),
		gitTimeout: cfg.GitTimeout,
		workers:    workers,
		logger:     logger,
		now:        time.Now,
	}
}

// Scan discovers the projects under the root and returns the new state and
// the changes relative to prev. prev is not modified. An error means the
// scan was aborted and no partial state should be persisted
func (s *Scanner) Scan(ctx context.Context, prev State) (State, []Change, error) {
	// WalkDir does not follow a symlinked root
	root, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return nil, nil, fmt.Errorf("projects directory not found: %s", s.root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("projects directory not found: %s", s.root)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("projects directory is not a directory: %s", s.root)
	}

	observations, err := s.observe(ctx, root)
	if err != nil {
		return nil, nil, err
	}
	return s.merge(ctx, prev, observations)
}

// observe inspects every discovered project. Inspection is independent
// per project and runs on up to s.workers goroutines; the result is
// sorted by project name
func (s *Scanner) observe(ctx context.Context, root string) ([]observation, error) {
	var dirs []string
	for dir := range discover(root, s.maxDepth, s.logger) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}

	observations := make([]observation, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			observations[i] = s.inspect(gctx, root, dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Name < observations[j].Name
	})
	return observations, nil
}

// inspect derives the per-scan facts of one project directory
func (s *Scanner) inspect(ctx context.Context, root, dir string) observation {
	name, err := filepath.Rel(root, dir)
	if err != nil {
		name = dir
	}
	name = filepath.ToSlash(name)
	s.logger.Debug("scanning project", "project", name)

	return observation{
		Name:    name,
		Path:    dir,
		Types:   detectTypes(dir),
		Version: extractVersion(dir),
		Git:     getVcsStatus(ctx, s.gitTimeout, dir),
		Hash:    fingerprint(dir),
	}
}

// needsAnalysis reports whether a project must be analyzed again: it has
// no valid analysis yet, or its tracked content changed since the last one
func needsAnalysis(prev *ProjectRecord, hash string) bool {
	if prev == nil || !prev.Analysis.isValid() {
		return true
	}
	return prev.ContentHash != hash
}

// merge reconciles observations with prev, analyzing stale projects and
// collecting the changes between both scans
func (s *Scanner) merge(ctx context.Context, prev State, observations []observation) (State, []Change, error) {
	next := make(State, len(observations))
	var changes []Change

	for _, o := range observations {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		var prevRecord *ProjectRecord
		if p, ok := prev[o.Name]; ok {
			prevRecord = &p
		}

		analysis, err := s.analysisFor(ctx, o, prevRecord)
		if err != nil {
			return nil, nil, err
		}

		record := ProjectRecord{
			Path:        o.Path,
			Types:       o.Types,
			Version:     o.Version,
			Git:         o.Git,
			Analysis:    analysis,
			ContentHash: o.Hash,
			LastScan:    s.now(),
		}
		changes = append(changes, detectChanges(o.Name, prevRecord, record)...)
		next[o.Name] = record
	}

	var removed []string
	for name := range prev {
		if _, ok := next[name]; !ok {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	for _, name := range removed {
		changes = append(changes, Change{Project: name, Kind: ChangeRemoved})
	}

	return next, changes, nil
}

// analysisFor returns the analysis of the new record. Stale projects are
// analyzed when an analyzer is configured, paced by the scanner's limiter.
// Provider failures become error shaped analyses and never abort the scan
func (s *Scanner) analysisFor(ctx context.Context, o observation, prev *ProjectRecord) (*Analysis, error) {
	var carried *Analysis
	if prev != nil {
		carried = prev.Analysis
	}
	if s.analyzer == nil || !needsAnalysis(prev, o.Hash) {
		return carried, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	s.logger.Debug("analyzing project", "project", o.Name)
	analysis, err := s.analyzer.Analyze(ctx, o.Name, projectContext(o.Path))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("analysis failed", "project", o.Name, "err", err)
		analysis = failedAnalysis(err)
	}
	return &analysis, nil
}
