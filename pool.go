package html2ooxml

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps automatic sizing; conversions are CPU bound.
	MaxPoolSize = 16
)

// ConverterPool bounds the number of conversions running at once and hands
// each worker its own Converter. Converters are created lazily on first
// acquire, all with the same options.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n Converter instances.
// The options are validated once here, so later lazy creation cannot fail
// on them.
func NewConverterPool(n int, opts ...Option) (*ConverterPool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	first, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}

	p := &ConverterPool{
		size:    n,
		opts:    opts,
		sem:     make(chan *Converter, n),
		created: 1,
	}
	p.sem <- first
	return p, nil
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use. Returns ErrPoolClosed after Close.
func (p *ConverterPool) Acquire() (*Converter, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	// Try to get an existing converter (non-blocking)
	select {
	case c, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new converter outside the lock
		c, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return c, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	c, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return c, nil
}

// Release returns a converter to the pool.
// The lock is held while sending so Close cannot close the channel under it;
// the channel has room for every converter, so the send never blocks.
func (p *ConverterPool) Release(c *Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- c
}

// Close stops the pool. Blocked and later Acquire calls return ErrPoolClosed.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.sem)
	return nil
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
