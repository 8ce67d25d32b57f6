package html2ooxml

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func newTestPool(t *testing.T, n int, opts ...Option) *ConverterPool {
	t.Helper()

	pool, err := NewConverterPool(n, opts...)
	if err != nil {
		t.Fatalf("NewConverterPool() unexpected error: %v", err)
	}
	return pool
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit can exceed max",
			workers: 100,
			want:    100,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -5,
			want:    min(max(gomaxprocs, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewConverterPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(2, WithParagraphStyle("has space"))
	if !errors.Is(err, ErrInvalidStyleID) {
		t.Errorf("NewConverterPool() error = %v, want ErrInvalidStyleID", err)
	}
	if pool != nil {
		t.Error("NewConverterPool() should return nil on error")
	}
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := newTestPool(t, tt.size)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2)
	defer pool.Close()

	c1, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	c2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if c3 != c1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_SharesOptions(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2, WithParagraphStyle("BodyText"))
	defer pool.Close()

	c1, _ := pool.Acquire()
	c2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	defer pool.Release(c1)
	defer pool.Release(c2)

	got, err := c2.ConvertHTML(context.Background(), "x")
	if err != nil {
		t.Fatalf("ConvertHTML() unexpected error: %v", err)
	}
	if !strings.Contains(got, "<w:pStyle w:val='BodyText'/>") {
		t.Errorf("lazily created converter ignored options: %s", got)
	}
}

func TestConverterPool_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 4)
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(conv)

			if _, err := conv.ConvertHTML(context.Background(), "<ul><li>a</li></ul>"); err != nil {
				errs <- err
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		t.Fatal("concurrent access test timed out - possible deadlock")
	}

	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestConverterPool_AllConvertersAcquired(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 3)
	defer pool.Close()

	seen := make(map[*Converter]bool)
	var converters []*Converter
	for i := range 3 {
		c, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() %d unexpected error: %v", i, err)
		}
		if seen[c] {
			t.Error("got duplicate converter from pool")
		}
		seen[c] = true
		converters = append(converters, c)
	}

	for _, c := range converters {
		pool.Release(c)
	}
}

func TestConverterPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 2)
	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Release after close is a no-op.
	pool.Release(c)

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_CloseUnblocksAcquire(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 1)
	if _, err := pool.Acquire(); err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}

	result := make(chan error, 1)
	go func() {
		_, err := pool.Acquire()
		result <- err
	}()

	time.Sleep(10 * time.Millisecond)
	pool.Close()

	select {
	case err := <-result:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("blocked Acquire() error = %v, want ErrPoolClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not unblock a waiting Acquire")
	}
}

func TestConverterPool_DoubleClose(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t, 1)

	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
