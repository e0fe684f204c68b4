package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 3
	testWindow = time.Minute
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	now   time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.store = NewInMemory(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "k:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.now.Add(testWindow), result.ResetAt)
	})

	s.Run("request over limit denied with retry hint", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "k:over", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Allow(s.ctx, "k:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Equal(60, result.RetryAfter)
	})

	s.Run("keys are independent", func() {
		for range testLimit {
			_, _ = s.store.Allow(s.ctx, "k:a", testLimit, testWindow)
		}
		result, err := s.store.Allow(s.ctx, "k:b", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}

func (s *InMemoryStoreSuite) TestWindowSlides() {
	key := "k:slide"
	for range testLimit {
		_, _ = s.store.Allow(s.ctx, key, testLimit, testWindow)
	}

	s.now = s.now.Add(30 * time.Second)
	result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(30, result.RetryAfter)

	s.now = s.now.Add(31 * time.Second)
	result, err = s.store.Allow(s.ctx, key, testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *InMemoryStoreSuite) TestSweepDropsIdleBuckets() {
	_, _ = s.store.Allow(s.ctx, "k:stale", 1, testWindow)
	s.now = s.now.Add(testWindow / 2)
	_, _ = s.store.Allow(s.ctx, "k:live", 1, testWindow)

	s.now = s.now.Add(testWindow/2 + time.Second)
	s.Equal(1, s.store.Sweep(testWindow))
	s.Equal(1, s.bucketCount())

	result, err := s.store.Allow(s.ctx, "k:live", 1, testWindow)
	s.Require().NoError(err)
	s.False(result.Allowed, "sweeping keeps buckets still inside the window")
}

func (s *InMemoryStoreSuite) TestSweepEveryRunsUntilCancelled() {
	_, _ = s.store.Allow(s.ctx, "k:stale", 1, testWindow)
	s.now = s.now.Add(2 * testWindow)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		s.store.SweepEvery(ctx, 5*time.Millisecond, testWindow)
		close(done)
	}()

	s.Eventually(func() bool { return s.bucketCount() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	s.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func (s *InMemoryStoreSuite) bucketCount() int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return len(s.store.buckets)
}

func (s *InMemoryStoreSuite) TestConcurrentAllowNeverExceedsLimit() {
	const workers = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "k:race", 10, testWindow)
			s.NoError(err)
			if result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(10, allowed)
}
