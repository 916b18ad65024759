package config

import (
	"os"
	"strconv"
	"time"
)

type WorkbenchCfg struct {
	// ExecTimeout bounds how long an execution may stay in flight before
	// the watchdog settles it with a synthetic failure. Zero disables.
	ExecTimeout time.Duration

	// WatchdogInterval is how often the watchdog sweeps sessions
	WatchdogInterval time.Duration

	// SessionMaxIdle closes sessions with no intents for this long
	SessionMaxIdle time.Duration

	// SessionCleanupInterval is how often idle sessions are swept
	SessionCleanupInterval time.Duration
}

func NewWorkbenchCfg() *WorkbenchCfg {
	execTimeoutSec, err := strconv.Atoi(os.Getenv("EXEC_TIMEOUT_SEC"))
	if err != nil {
		execTimeoutSec = 60
	}
	watchdogSec, err := strconv.Atoi(os.Getenv("WATCHDOG_INTERVAL_SEC"))
	if err != nil {
		watchdogSec = 5
	}
	maxIdleSec, err := strconv.Atoi(os.Getenv("SESSION_MAX_IDLE_SEC"))
	if err != nil {
		maxIdleSec = 3600
	}
	cleanupSec, err := strconv.Atoi(os.Getenv("SESSION_CLEANUP_INTERVAL_SEC"))
	if err != nil {
		cleanupSec = 300
	}
	return &WorkbenchCfg{
		ExecTimeout:            time.Duration(execTimeoutSec) * time.Second,
		WatchdogInterval:       time.Duration(watchdogSec) * time.Second,
		SessionMaxIdle:         time.Duration(maxIdleSec) * time.Second,
		SessionCleanupInterval: time.Duration(cleanupSec) * time.Second,
	}
}
