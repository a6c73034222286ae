package wizard

import (
	"context"
	"sync/atomic"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/schema"
)

// ContractLoader guards contract loading against the stale-response race: a
// superseded load can still resolve after a newer one started, so every load
// is tagged with a monotonic request id and results whose id is no longer
// the latest are discarded instead of being written into the store.
type ContractLoader struct {
	adapter adapters.Adapter
	latest  atomic.Uint64
}

// NewContractLoader creates a loader for one adapter.
func NewContractLoader(adapter adapters.Adapter) *ContractLoader {
	return &ContractLoader{adapter: adapter}
}

// Load runs the adapter's contract load. The returned stale flag is true
// when a newer Load was issued while this one was in flight; callers must
// drop stale results.
func (l *ContractLoader) Load(ctx context.Context, src adapters.ContractSource) (result *schema.ContractSchema, stale bool, err error) {
	id := l.latest.Add(1)
	s, err := l.adapter.LoadContract(ctx, src)
	if l.latest.Load() != id {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return s, false, nil
}
