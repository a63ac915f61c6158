package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/ports"
)

var _ ports.ObjectProber = (*Prober)(nil)

// Prober is an in-memory object prober for development and tests.
type Prober struct {
	mu    sync.RWMutex
	keys  map[string]struct{}
	err   error
	calls atomic.Int64
}

func NewProber(keys ...string) *Prober {
	p := &Prober{keys: map[string]struct{}{}}
	for _, k := range keys {
		p.keys[k] = struct{}{}
	}
	return p
}

// Put marks key as present.
func (p *Prober) Put(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[key] = struct{}{}
}

// FailWith makes every subsequent probe return err.
func (p *Prober) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Calls returns how many probes were made.
func (p *Prober) Calls() int64 {
	return p.calls.Load()
}

func (p *Prober) ObjectExists(ctx context.Context, key string) (bool, error) {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.err != nil {
		return false, p.err
	}
	_, ok := p.keys[key]
	return ok, nil
}
