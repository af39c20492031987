package clock

import (
	"sync"
	"time"
)

// Provider is the time source of a game.
type Provider interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Mock provides a controllable time source for testing
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
