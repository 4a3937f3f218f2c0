package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool(2, 4)
	defer p.Close()

	var count int64
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		p.Submit(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}

	waitWithTimeout(t, &wg, time.Second)
	assert.Equal(t, int64(10), atomic.LoadInt64(&count))
}

func TestPool_RecoversFromPanickingJob(t *testing.T) {
	p := NewPool(1, 4)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	p.Submit(func() {
		defer wg.Done()
		panic("boom")
	})
	var ran bool
	p.Submit(func() {
		defer wg.Done()
		ran = true
	})

	waitWithTimeout(t, &wg, time.Second)
	assert.True(t, ran, "a panicking job must not stop the pool from draining later jobs")
}

func TestNewPool_DefaultsToOneWorkerWhenGivenZero(t *testing.T) {
	p := NewPool(0, 1)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { wg.Done() })

	waitWithTimeout(t, &wg, time.Second)
}

func waitWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for jobs to complete")
	}
}
