package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewPoolDefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()

	if p.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("expected %d workers, got %d", runtime.GOMAXPROCS(0), p.Workers())
	}
}

func TestExecuteAll(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count atomic.Int64
	work := make([]func(), 1000)
	for i := range work {
		work[i] = func() { count.Add(1) }
	}
	p.ExecuteAll(work)

	if got := count.Load(); got != 1000 {
		t.Errorf("expected 1000 tasks to run, got %d", got)
	}
}

func TestExecuteAllWritesVisible(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	out := make([]int, 64)
	work := make([]func(), len(out))
	for i := range work {
		work[i] = func() { out[i] = i * i }
	}
	p.ExecuteAll(work)

	for i, v := range out {
		if v != i*i {
			t.Fatalf("slot %d: expected %d, got %d", i, i*i, v)
		}
	}
}

func TestExecuteAllAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	ran := 0
	p.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("expected tasks to run inline after close, got %d", ran)
	}
}
