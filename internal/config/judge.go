package config

import (
	"os"
	"strconv"
	"time"
)

type JudgeConfig struct {
	BaseURL        string
	APIKey         string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

func NewJudgeConfig() *JudgeConfig {
	baseURL := os.Getenv("JUDGE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:2358"
	}
	pollMs, err := strconv.Atoi(os.Getenv("JUDGE_POLL_INTERVAL_MS"))
	if err != nil || pollMs <= 0 {
		pollMs = 500
	}
	timeoutSec, err := strconv.Atoi(os.Getenv("JUDGE_REQUEST_TIMEOUT_SEC"))
	if err != nil {
		timeoutSec = 15
	}
	return &JudgeConfig{
		BaseURL:        baseURL,
		APIKey:         os.Getenv("JUDGE_API_KEY"),
		PollInterval:   time.Duration(pollMs) * time.Millisecond,
		RequestTimeout: time.Duration(timeoutSec) * time.Second,
	}
}
