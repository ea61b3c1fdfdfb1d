// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"sync"
)

// Memory is a bounded in-memory Recorder. Once full, the oldest entry is overwritten.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewMemory(size int) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{entries: make([]Entry, size)}
}

func (m *Memory) Record(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = entry
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := m.next
	if m.full {
		count = len(m.entries)
	}
	limit = min(normalizeLimit(limit, len(m.entries)), count)

	result := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.entries)) % len(m.entries)
		result = append(result, m.entries[idx])
	}
	return result, nil
}

func (m *Memory) Close() error {
	return nil
}
