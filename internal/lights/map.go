package lights

import "sync"

type deviceMap struct {
	mu      sync.RWMutex
	devices map[string]*device
}

func newDeviceMap() *deviceMap {
	return &deviceMap{devices: make(map[string]*device)}
}

func (dm *deviceMap) Get(id string) *device {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.devices[id]
}

func (dm *deviceMap) Set(id string, d *device) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.devices[id] = d
}

func (dm *deviceMap) Delete(id string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.devices, id)
}

func (dm *deviceMap) Has(id string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, exists := dm.devices[id]
	return exists
}

func (dm *deviceMap) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.devices)
}

// All snapshots the current devices so callers can iterate without
// holding the lock.
func (dm *deviceMap) All() []*device {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	all := make([]*device, 0, len(dm.devices))
	for _, d := range dm.devices {
		all = append(all, d)
	}
	return all
}
