// Package watcher periodically re-validates managed engine config files
// on disk so drift introduced behind the tool's back gets surfaced.
package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/confsmith/confsmith/internal/audit"
	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/logger"
	"github.com/confsmith/confsmith/internal/validate"
)

// Target is one file the watcher keeps an eye on.
type Target struct {
	Engine string
	Path   string
}

// Watcher re-validates targets on a cron schedule.
type Watcher struct {
	targets []Target
	store   *audit.Store // optional
	cron    *cron.Cron
	running bool
	mu      sync.RWMutex
}

// New creates a watcher for the given targets. store may be nil when no
// audit trail is wanted.
func New(targets []Target, store *audit.Store) *Watcher {
	return &Watcher{
		targets: targets,
		store:   store,
		cron:    cron.New(),
	}
}

// Start registers the cron entry and runs one immediate sweep so drift
// is reported without waiting for the first tick.
func (w *Watcher) Start(ctx context.Context, cronExpr string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	_, err := w.cron.AddFunc(cronExpr, func() {
		w.CheckAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to add cron entry: %w", err)
	}

	w.CheckAll(ctx)

	w.cron.Start()
	w.running = true

	logger.Info("Watcher started with cron expression: %s", cronExpr)
	return nil
}

// Stop stops the cron loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.cron.Stop()
	w.running = false

	logger.Info("Watcher stopped")
}

// CheckAll sweeps every target once.
func (w *Watcher) CheckAll(ctx context.Context) {
	for _, target := range w.targets {
		if err := w.CheckTarget(ctx, target); err != nil {
			logger.Error("Check of %s failed: %v", target.Path, err)
		}
	}
}

// CheckTarget re-parses and re-validates one file, logging findings and
// recording the sweep in the audit log.
func (w *Watcher) CheckTarget(ctx context.Context, target Target) error {
	data, err := os.ReadFile(target.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", target.Path, err)
	}

	doc, err := document.Parse(target.Engine, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", target.Path, err)
	}

	res, err := validate.Document(doc, target.Engine)
	if err != nil {
		return err
	}

	for _, warning := range res.Warnings {
		logger.Warning("%s: %s", target.Path, warning.Error())
	}
	for _, problem := range res.Errors {
		logger.Error("%s: %s", target.Path, problem.Error())
	}

	if res.OK() {
		logger.Info("%s: valid (%d warning(s))", target.Path, len(res.Warnings))
	}

	if w.store != nil {
		outcome := "ok"
		if !res.OK() {
			outcome = "failed"
		}
		run := &audit.Run{
			Engine:   res.Engine,
			Action:   "watch",
			Target:   target.Path,
			Errors:   len(res.Errors),
			Warnings: len(res.Warnings),
			Outcome:  outcome,
		}
		if err := w.store.Record(ctx, run); err != nil {
			logger.Error("Failed to record watch run: %v", err)
		}
	}

	if !res.OK() {
		return fmt.Errorf("%s: %d validation error(s)", target.Path, len(res.Errors))
	}
	return nil
}
