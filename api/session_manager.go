package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/jchan-dev/rv32i-emu/debugger"
	"github.com/jchan-dev/rv32i-emu/vm"
)

// Session wraps one single-threaded Emulator/Debugger pair. Every HTTP
// handler that touches the emulator is serialised through mu so request
// goroutines never touch the core concurrently, matching SPEC_FULL.md §5.
// The breakpoint handlers do not take mu; they rely on BreakpointManager's
// own lock.
type Session struct {
	ID        string
	Debugger  *debugger.Debugger
	CreatedAt time.Time

	mu sync.Mutex
}

// Lock/Unlock let handlers serialise a sequence of calls (e.g. step then
// read registers) against one session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionManager creates and tracks Sessions, keyed by a random ID.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *Broadcaster
}

// NewSessionManager returns an empty manager publishing events through b.
func NewSessionManager(b *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: b,
	}
}

// Create allocates a new Emulator (one processor) of the given memory size
// and wraps it in a Session.
func (m *SessionManager) Create(memSize int) (*Session, error) {
	if memSize <= 0 {
		return nil, fmt.Errorf("api: memory_size must be positive")
	}

	id, err := randomID()
	if err != nil {
		return nil, fmt.Errorf("api: generating session id: %w", err)
	}

	e := vm.NewEmulator(memSize, 1)
	sess := &Session{
		ID:        id,
		Debugger:  debugger.NewDebugger(e, 0),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	return sess, nil
}

// Get returns the session with id, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Destroy removes the session with id.
func (m *SessionManager) Destroy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		return true
	}
	return false
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
