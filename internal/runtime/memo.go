package runtime

import "container/list"

// memoKey identifies one memoized value. Coordinates are stored as IEEE bits
// so that -0 and 0 or distinct NaN payloads never alias. The top-level point
// is set only for nodes whose value depends on it.
type memoKey struct {
	prog       uint64
	node       int
	x, y, z    uint64
	fp         uint64
	tx, ty, tz uint64
}

type lruEntry struct {
	key   memoKey
	value float64
}

// store is the memo of one cache node. A positive capacity bounds it with
// least-recently-used eviction; otherwise it grows for the session lifetime.
type store struct {
	capacity int
	items    map[memoKey]*list.Element
	values   map[memoKey]float64
	order    *list.List
}

func newStore(capacity int) *store {
	if capacity > 0 {
		return &store{
			capacity: capacity,
			items:    make(map[memoKey]*list.Element, capacity),
			order:    list.New(),
		}
	}
	return &store{values: make(map[memoKey]float64)}
}

func (s *store) get(k memoKey) (float64, bool) {
	if s.order == nil {
		v, ok := s.values[k]
		return v, ok
	}
	el, ok := s.items[k]
	if !ok {
		return 0, false
	}
	s.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (s *store) put(k memoKey, v float64) {
	if s.order == nil {
		s.values[k] = v
		return
	}
	if el, ok := s.items[k]; ok {
		el.Value.(*lruEntry).value = v
		s.order.MoveToFront(el)
		return
	}
	s.items[k] = s.order.PushFront(&lruEntry{key: k, value: v})
	if s.order.Len() > s.capacity {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*lruEntry).key)
	}
}

func (s *store) len() int {
	if s.order == nil {
		return len(s.values)
	}
	return s.order.Len()
}

// memo holds every cache node's store for one session.
type memo struct {
	stores map[int]*store
}

func newMemo() *memo {
	return &memo{stores: make(map[int]*store)}
}

func (m *memo) store(node, capacity int) *store {
	s, ok := m.stores[node]
	if !ok {
		s = newStore(capacity)
		m.stores[node] = s
	}
	return s
}

// Len reports the number of memoized values across all stores.
func (m *memo) Len() int {
	n := 0
	for _, s := range m.stores {
		n += s.len()
	}
	return n
}
