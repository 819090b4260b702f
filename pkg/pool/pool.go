// Package pool provides a fixed set of worker goroutines, for signing and
// verifying many independent items at once.
package pool

import (
	"io"
	"runtime"
	"sync"
)

// task asks a worker to compute f(i).
type task struct {
	i  int
	f  func(int)
	wg *sync.WaitGroup
}

func worker(tasks <-chan task) {
	for t := range tasks {
		t.f(t.i)
		t.wg.Done()
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
type Pool struct {
	tasks       chan task
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		tasks:       make(chan task),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}
	return p
}

// TearDown stops the workers. The pool can't be used afterwards.
func (p *Pool) TearDown() {
	if p != nil {
		close(p.tasks)
	}
}

// Workers returns the number of workers, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// Parallelize calls f(0), …, f(count-1), and returns once every call is done.
//
// f must be safe to call concurrently, and must not use the pool itself.
func (p *Pool) Parallelize(count int, f func(int)) {
	if p == nil || count <= 1 {
		for i := 0; i < count; i++ {
			f(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		p.tasks <- task{i: i, f: f, wg: &wg}
	}
	wg.Wait()
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// Concurrent readers each get distinct bytes of the underlying stream,
// in an unspecified order.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

// Read implements io.Reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
