// Package history persists analyze runs across invocations.
package history

import (
	"sync"

	"github.com/focuslab/focuswatch/internal/contract"
)

// StoreManager manages the run history store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.HistoryStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// GetRunStore returns the run HistoryStore.
func (mgr *StoreManager) GetRunStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
