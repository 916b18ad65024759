package watchdog

import (
	"context"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/config"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
)

// Watchdog sweeps sessions in the background. One ticker settles executions
// that outlived the judge timeout, another closes sessions nobody touches.
type Watchdog struct {
	WorkbenchCfg     *config.WorkbenchCfg
	workbenchService workbench.IWorkbenchService
	logger           primary.Logger
}

func NewWatchdog(
	workbenchCfg *config.WorkbenchCfg,
	workbenchService workbench.IWorkbenchService,
	logger primary.Logger,
) *Watchdog {
	return &Watchdog{
		WorkbenchCfg:     workbenchCfg,
		workbenchService: workbenchService,
		logger:           logger,
	}
}

// Start launches the sweep goroutines. They stop when ctx is cancelled.
func (w *Watchdog) Start(ctx context.Context) {
	ticker := time.NewTicker(w.WorkbenchCfg.WatchdogInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.workbenchService.ExpireStale(w.WorkbenchCfg.ExecTimeout)
			}
		}
	}()

	cleanupTicker := time.NewTicker(w.WorkbenchCfg.SessionCleanupInterval)
	go func() {
		defer cleanupTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-cleanupTicker.C:
				if closed := w.workbenchService.CleanupIdle(w.WorkbenchCfg.SessionMaxIdle); closed > 0 {
					w.logger.Info("Closed idle sessions", "count", closed)
				}
			}
		}
	}()
}
