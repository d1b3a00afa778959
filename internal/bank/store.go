package bank

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("question set not found")

type Store interface {
	PutSet(ctx context.Context, s Set) error
	GetSet(ctx context.Context, id string) (Set, error)
	ListSets(ctx context.Context, opts ListOpts) ([]SetSummary, error)
	DeleteSet(ctx context.Context, id string) error
}

// memoryStore backs tests and ephemeral runs.
type memoryStore struct {
	mu   sync.RWMutex
	sets map[string]Set
}

func NewInMemoryStore() Store {
	return &memoryStore{sets: map[string]Set{}}
}

func (m *memoryStore) PutSet(ctx context.Context, s Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[s.ID] = s
	return nil
}

func (m *memoryStore) GetSet(ctx context.Context, id string) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sets[id]
	if !ok {
		return Set{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSets(ctx context.Context, opts ListOpts) ([]SetSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SetSummary, 0, len(m.sets))
	q := strings.ToLower(strings.TrimSpace(opts.Q))
	for _, s := range m.sets {
		if q != "" && !strings.Contains(strings.ToLower(s.Title), q) {
			continue
		}
		out = append(out, SetSummary{
			ID:            s.ID,
			Title:         s.Title,
			Source:        s.Source,
			QuestionCount: len(s.Questions),
			CreatedAt:     s.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return window(out, opts.Limit, opts.Offset), nil
}

func (m *memoryStore) DeleteSet(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sets[id]; !ok {
		return ErrNotFound
	}
	delete(m.sets, id)
	return nil
}

func window(in []SetSummary, limit, offset int) []SetSummary {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []SetSummary{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
