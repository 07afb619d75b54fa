package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Adapter used by tests and local development.
// Filter and ordering semantics match the MySQL adapter.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	now         func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]Document),
		now:         time.Now,
	}
}

// SetClock overrides the timestamp source, for tests that assert on
// createdAt/updatedAt.
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Memory) Create(ctx context.Context, collection string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]Document)
		m.collections[collection] = col
	}

	id := uuid.NewString()
	stored := copyDoc(doc)
	delete(stored, "id")
	stamp := TimeValue(m.now())
	stored["createdAt"] = stamp
	stored["updatedAt"] = stamp
	col[id] = stored
	return id, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyDoc(doc)
	out["id"] = id
	return out, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, patch Document) error {
	return m.UpdateWhere(ctx, collection, id, patch, nil)
}

func (m *Memory) UpdateWhere(ctx context.Context, collection, id string, patch Document, conds []Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for _, f := range conds {
		if !matches(doc, f) {
			return ErrConditionFailed
		}
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	doc["updatedAt"] = TimeValue(m.now())
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) Query(ctx context.Context, collection string, filters []Filter, order *Order) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []Document
	for id, doc := range m.collections[collection] {
		ok := true
		for _, f := range filters {
			if !matches(doc, f) {
				ok = false
				break
			}
		}
		if ok {
			out := copyDoc(doc)
			out["id"] = id
			results = append(results, out)
		}
	}

	if order != nil {
		sort.SliceStable(results, func(i, j int) bool {
			cmp, ok := compare(results[i][order.Field], results[j][order.Field])
			if !ok {
				return false
			}
			if order.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return results, nil
}

func matches(doc Document, f Filter) bool {
	cmp, ok := compare(doc[f.Field], f.Value)
	if !ok {
		return false
	}
	switch f.Op {
	case OpEq:
		return cmp == 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

// compare handles the scalar types a Document can hold after a JSON round
// trip. Mixed or unsupported types report not-comparable, which excludes the
// document from filter matches, mirroring how the SQL adapter's typed CAST
// behaves on malformed values.
func compare(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		if !av && bv {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func copyDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
