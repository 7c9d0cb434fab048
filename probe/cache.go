package probe

import "sync"

// Cache holds the most recent readout of each system metric. Monitors write
// into it on their own cadences; the HTTP API reads whatever is current.
type Cache struct {
	mu      sync.RWMutex
	loadAvg *LoadAvg
	memory  *Memory
	cpu     *CPU
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) SetLoadAvg(r LoadAvg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadAvg = &r
}

func (c *Cache) LoadAvg() (LoadAvg, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loadAvg == nil {
		return LoadAvg{}, false
	}
	return *c.loadAvg, true
}

func (c *Cache) SetMemory(r Memory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory = &r
}

func (c *Cache) Memory() (Memory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.memory == nil {
		return Memory{}, false
	}
	return *c.memory, true
}

func (c *Cache) SetCPU(r CPU) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cpu = &r
}

func (c *Cache) CPU() (CPU, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cpu == nil {
		return CPU{}, false
	}
	return *c.cpu, true
}
