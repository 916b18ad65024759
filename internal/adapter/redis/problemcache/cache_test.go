package problemcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/adapter/redis/problemcache"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type countingSource struct {
	calls   int
	problem *domain.Problem
	err     error
}

func (s *countingSource) GetProblem(_ context.Context, _ string) (*domain.Problem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.problem, nil
}

func newCache(t *testing.T, upstream *countingSource, ttl time.Duration) (*problemcache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return problemcache.New(client, upstream, ttl, nopLogger{}), mr
}

func TestReadThroughPopulatesCache(t *testing.T) {
	upstream := &countingSource{problem: &domain.Problem{
		ID:              "p1",
		Title:           "Two Sum",
		TestcaseSamples: []domain.Sample{{Input: "1 2", Output: "3"}},
	}}
	cache, _ := newCache(t, upstream, time.Minute)

	first, err := cache.GetProblem(context.Background(), "p1")
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := cache.GetProblem(context.Background(), "p1")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}

	if upstream.calls != 1 {
		t.Fatalf("second read must be served from cache, upstream calls=%d", upstream.calls)
	}
	if first.Title != second.Title || len(second.TestcaseSamples) != 1 {
		t.Fatalf("cached problem mismatch: %+v", second)
	}
}

func TestExpiredEntryFallsBackToUpstream(t *testing.T) {
	upstream := &countingSource{problem: &domain.Problem{ID: "p1", Title: "Two Sum"}}
	cache, mr := newCache(t, upstream, time.Second)

	if _, err := cache.GetProblem(context.Background(), "p1"); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, err := cache.GetProblem(context.Background(), "p1"); err != nil {
		t.Fatalf("read after expiry failed: %v", err)
	}
	if upstream.calls != 2 {
		t.Fatalf("expired entry must hit upstream again, calls=%d", upstream.calls)
	}
}

func TestUpstreamErrorPropagates(t *testing.T) {
	upstream := &countingSource{err: errors.New("down")}
	cache, _ := newCache(t, upstream, time.Minute)

	if _, err := cache.GetProblem(context.Background(), "p1"); err == nil {
		t.Fatalf("upstream error must propagate on cache miss")
	}
}
