package jitter

import (
	rtmetrics "runtime/metrics"
	"sync"
	"time"

	"github.com/shirou/gopsutil/mem"

	"github.com/safing/jitterpool/log"
)

const (
	// DefaultMemoryProbeTTL is how long a host memory reading is reused.
	DefaultMemoryProbeTTL = 100 * time.Millisecond

	heapFreeMetric = "/memory/classes/heap/free:bytes"
)

// HostMemory is a MemoryProbe that combines the free memory of the host with
// the free bytes of the Go heap. Host readings are cached for a short time,
// the heap reading changes with every allocation. It is safe for concurrent
// use.
type HostMemory struct {
	lock sync.Mutex

	ttl      time.Duration
	hostFree uint64
	expires  time.Time
	heap     []rtmetrics.Sample
}

// NewHostMemory returns a new host memory probe. A ttl of zero or less
// selects DefaultMemoryProbeTTL.
func NewHostMemory(ttl time.Duration) *HostMemory {
	if ttl <= 0 {
		ttl = DefaultMemoryProbeTTL
	}
	return &HostMemory{
		ttl:  ttl,
		heap: []rtmetrics.Sample{{Name: heapFreeMetric}},
	}
}

// Free returns the current approximation of free memory in bytes.
func (h *HostMemory) Free() uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()

	if now := time.Now(); now.After(h.expires) {
		stat, err := mem.VirtualMemory()
		if err != nil {
			log.Debugf("jitter: failed to get host memory: %s", err)
			h.hostFree = 0
		} else {
			h.hostFree = stat.Free
		}
		h.expires = now.Add(h.ttl)
	}

	rtmetrics.Read(h.heap)
	var heapFree uint64
	if h.heap[0].Value.Kind() == rtmetrics.KindUint64 {
		heapFree = h.heap[0].Value.Uint64()
	}

	return h.hostFree ^ heapFree
}
