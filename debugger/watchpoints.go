package debugger

import (
	"strconv"
	"sync"
)

// Watchpoint pauses execution when a register's value changes.
type Watchpoint struct {
	ID       int
	Register uint32
	LastSeen uint32
	Expression string
}

// WatchpointManager tracks watchpoints over register values.
type WatchpointManager struct {
	mu          sync.RWMutex
	watchpoints map[int]*Watchpoint
	nextID      int
}

// NewWatchpointManager returns an empty manager.
func NewWatchpointManager() *WatchpointManager {
	return &WatchpointManager{
		watchpoints: make(map[int]*Watchpoint),
		nextID:      1,
	}
}

// Add creates a watchpoint over register reg, seeded with its current value.
func (m *WatchpointManager) Add(reg uint32, current uint32) *Watchpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	wp := &Watchpoint{
		ID:         m.nextID,
		Register:   reg,
		LastSeen:   current,
		Expression: registerName(reg),
	}
	m.nextID++
	m.watchpoints[wp.ID] = wp
	return wp
}

// Delete removes the watchpoint with the given ID.
func (m *WatchpointManager) Delete(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.watchpoints[id]; ok {
		delete(m.watchpoints, id)
		return true
	}
	return false
}

// All returns every watchpoint, in no particular order.
func (m *WatchpointManager) All() []*Watchpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Watchpoint, 0, len(m.watchpoints))
	for _, wp := range m.watchpoints {
		out = append(out, wp)
	}
	return out
}

// Check compares each watchpoint's register against current, returning the
// first one whose value changed and updating its stored value.
func (m *WatchpointManager) Check(current func(reg uint32) uint32) (*Watchpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, wp := range m.watchpoints {
		v := current(wp.Register)
		if v != wp.LastSeen {
			wp.LastSeen = v
			return wp, true
		}
	}
	return nil, false
}

func registerName(reg uint32) string {
	return "x" + strconv.FormatUint(uint64(reg), 10)
}
