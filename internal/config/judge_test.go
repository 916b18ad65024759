package config_test

import (
	"testing"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/config"
)

func TestJudgePollIntervalFromEnv(t *testing.T) {
	t.Setenv("JUDGE_POLL_INTERVAL_MS", "250")

	cfg := config.NewJudgeConfig()
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("got poll interval %v, want 250ms", cfg.PollInterval)
	}
}

func TestJudgePollIntervalRejectsNonPositive(t *testing.T) {
	// a zero interval would panic the poll ticker, so it falls back
	for _, raw := range []string{"0", "-100"} {
		t.Setenv("JUDGE_POLL_INTERVAL_MS", raw)

		cfg := config.NewJudgeConfig()
		if cfg.PollInterval != 500*time.Millisecond {
			t.Fatalf("JUDGE_POLL_INTERVAL_MS=%s: got %v, want 500ms fallback", raw, cfg.PollInterval)
		}
	}
}
