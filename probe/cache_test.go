package probe

import (
	"sync"
	"testing"
	"time"
)

func TestCacheEmptyReturnsNotOk(t *testing.T) {
	c := NewCache()

	if _, ok := c.LoadAvg(); ok {
		t.Error("Expected no load average before first set")
	}
	if _, ok := c.Memory(); ok {
		t.Error("Expected no memory reading before first set")
	}
	if _, ok := c.CPU(); ok {
		t.Error("Expected no cpu reading before first set")
	}
}

func TestCacheKeepsLatestReading(t *testing.T) {
	c := NewCache()

	c.SetLoadAvg(LoadAvg{Load1: 1})
	c.SetLoadAvg(LoadAvg{Load1: 2, CollectedAt: time.Now()})

	reading, ok := c.LoadAvg()
	if !ok {
		t.Fatal("Expected a cached reading")
	}
	if reading.Load1 != 2 {
		t.Errorf("Expected latest reading, got %+v", reading)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.SetMemory(Memory{Used: uint64(n*100 + j)})
				c.Memory()
				c.SetCPU(CPU{UsedPercent: float64(j)})
				c.CPU()
			}
		}(i)
	}
	wg.Wait()

	if _, ok := c.Memory(); !ok {
		t.Error("Expected a memory reading after concurrent writes")
	}
}
