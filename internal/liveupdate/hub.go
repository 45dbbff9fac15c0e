// Package liveupdate carries the mutation sequence clients poll to learn
// that "tasks" or "schedules" changed. The hub is created once at process
// start and injected into the API server; it owns its state instead of
// living in a package-level variable.
package liveupdate

import "sync"

type Hub struct {
	mu     sync.Mutex
	seq    uint64
	topics map[string]uint64
}

func New() *Hub {
	return &Hub{
		topics: make(map[string]uint64),
	}
}

// Notify bumps the global sequence and stamps the topic with it. Called
// after each successful mutation; never from inside a transaction.
func (h *Hub) Notify(topic string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.topics[topic] = h.seq
	return h.seq
}

// Snapshot returns the current sequence and a copy of per-topic marks.
func (h *Hub) Snapshot() (uint64, map[string]uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	topics := make(map[string]uint64, len(h.topics))
	for topic, seq := range h.topics {
		topics[topic] = seq
	}
	return h.seq, topics
}
