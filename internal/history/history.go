// Package history keeps an opt-in audit trail of score lookups.
package history

import (
	"sync"

	"github.com/huangsam/satscout/internal/contract"
)

// StoreManager manages the LookupStore instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	lookups      contract.LookupStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// NewStoreManager wraps an already opened store.
func NewStoreManager(store contract.LookupStore) *StoreManager {
	return &StoreManager{lookups: store}
}

// GetLookupStore returns the LookupStore, or nil when history is disabled.
func (mgr *StoreManager) GetLookupStore() contract.LookupStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.lookups
}
