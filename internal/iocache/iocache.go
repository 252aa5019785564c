// Package iocache persists classification verdicts across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/botspot/internal/contract"
)

// VerdictStoreManager manages the VerdictStore instance.
type VerdictStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	verdicts     contract.VerdictStore
}

var _ contract.VerdictManager = &VerdictStoreManager{} // Compile-time check

// GetVerdictStore returns the verdict store.
func (mgr *VerdictStoreManager) GetVerdictStore() contract.VerdictStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.verdicts
}
