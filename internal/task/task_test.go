package task

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateReleaseOnce(t *testing.T) {
	g := NewGate()
	assert.False(t, g.Released())

	g.Release()
	g.Release()
	assert.True(t, g.Released())

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on a released gate")
	}
}

func TestGateReleasesAllWaiters(t *testing.T) {
	g := NewGate()
	var woke atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Wait()
			woke.Add(1)
		}()
	}

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, woke.Load())

	g.Release()
	wg.Wait()
	assert.Equal(t, int32(20), woke.Load())
}

func TestFutureRunsOnce(t *testing.T) {
	var calls atomic.Int32
	f := New(func() int {
		calls.Add(1)
		return 42
	})
	assert.False(t, f.Ready())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 42, f.Get())
		}()
	}
	wg.Wait()

	f.Start()
	assert.Equal(t, 42, f.Get())
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, f.Ready())
}

func TestFutureBlocksUntilDone(t *testing.T) {
	release := make(chan struct{})
	f := Spawn(func() string {
		<-release
		return "built"
	})

	got := make(chan string)
	go func() { got <- f.Get() }()

	select {
	case <-got:
		t.Fatal("Get returned before the task finished")
	case <-time.After(10 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, "built", <-got)
}

func TestFuturePanicReleasesWaiters(t *testing.T) {
	f := Spawn(func() map[string]string {
		panic("boom")
	})

	assert.Nil(t, f.Get())
	assert.Equal(t, "boom", f.Panicked())
}
