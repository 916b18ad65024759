package config

import (
	"os"
	"strconv"
	"time"
)

type ProblemAPICfg struct {
	BaseURL        string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

func NewProblemAPICfg() *ProblemAPICfg {
	baseURL := os.Getenv("PROBLEM_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}
	timeoutSec, err := strconv.Atoi(os.Getenv("PROBLEM_API_TIMEOUT_SEC"))
	if err != nil {
		timeoutSec = 10
	}
	ttlSec, err := strconv.Atoi(os.Getenv("PROBLEM_CACHE_TTL_SEC"))
	if err != nil {
		ttlSec = 600
	}
	return &ProblemAPICfg{
		BaseURL:        baseURL,
		RequestTimeout: time.Duration(timeoutSec) * time.Second,
		CacheTTL:       time.Duration(ttlSec) * time.Second,
	}
}
