package memory

import (
	"sync"
	"time"
)

// kind describes how a table handles one entity type.
type kind[T any] struct {
	assign func(*T, int64, time.Time) // sets ID and any server timestamps
	clone  func(*T) *T
}

// table is the backing map of one entity kind. IDs are monotonic and never
// reused, including after a rolled-back insert.
type table[T any] struct {
	mu     sync.RWMutex
	kind   kind[T]
	nextID int64
	rows   map[int64]*T
	order  []int64
}

func newTable[T any](k kind[T]) *table[T] {
	return &table[T]{
		kind: k,
		rows: make(map[int64]*T),
	}
}

// insert stores a copy of v after assigning its ID. check runs under the write
// lock against every existing row and may veto the insert.
func (t *table[T]) insert(scope *txScope, v *T, now time.Time, check func(existing *T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		for _, id := range t.order {
			if err := check(t.rows[id]); err != nil {
				return err
			}
		}
	}

	t.nextID++
	id := t.nextID
	t.kind.assign(v, id, now)
	t.rows[id] = t.kind.clone(v)
	t.order = append(t.order, id)

	scope.record(func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.rows, id)
		for i, oid := range t.order {
			if oid == id {
				t.order = append(t.order[:i], t.order[i+1:]...)

				break
			}
		}
	})

	return nil
}

// get returns a copy of the row with the given id.
func (t *table[T]) get(id int64) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}

	return t.kind.clone(row), true
}

// find returns a copy of the first row matching pred in insertion order.
func (t *table[T]) find(pred func(*T) bool) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			return t.kind.clone(row), true
		}
	}

	return nil, false
}

// list returns copies of all rows matching pred in insertion order.
func (t *table[T]) list(pred func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if pred == nil || pred(row) {
			result = append(result, t.kind.clone(row))
		}
	}

	return result
}

// update applies mutate to the stored row under the write lock. It reports
// false if the id is absent. If mutate fails nothing is written.
func (t *table[T]) update(scope *txScope, id int64, mutate func(*T) error) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return false, nil
	}

	next := t.kind.clone(row)
	if err := mutate(next); err != nil {
		return true, err
	}
	t.rows[id] = next

	scope.record(func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.rows[id] = row
	})

	return true, nil
}
