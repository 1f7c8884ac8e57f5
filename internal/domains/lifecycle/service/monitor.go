package service

import (
	"slices"
	"strings"
	"sync"

	"lodge/internal/domains/lifecycle/model"
)

// Tracker holds the bookings under remaining-time monitoring and the last value
// the upstream reported for each.
type Tracker struct {
	mu      sync.RWMutex
	watched map[string]model.Monitor
}

func NewTracker() *Tracker {
	return &Tracker{watched: make(map[string]model.Monitor)}
}

func key(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (t *Tracker) Start(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.watched[key(code)]; !ok {
		t.watched[key(code)] = model.Monitor{BookingCode: code}
	}
}

func (t *Tracker) Stop(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.watched, key(code))
}

// Record stores a value only for watched bookings.
func (t *Tracker) Record(m model.Monitor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.watched[key(m.BookingCode)]; ok {
		t.watched[key(m.BookingCode)] = m
	}
}

func (t *Tracker) Get(code string) (model.Monitor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.watched[key(code)]

	return m, ok
}

// Watched returns the monitored booking codes in a stable order.
func (t *Tracker) Watched() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	codes := make([]string, 0, len(t.watched))
	for _, m := range t.watched {
		codes = append(codes, m.BookingCode)
	}

	slices.Sort(codes)

	return codes
}
