package resource

import (
	"sync"
)

// Table is a local reference table with borrow tracking and lifecycle observers.
type Table struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *Table {
	return &Table{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its reference.
func (t *Table) Insert(value any) (Handle, error) {
	handle, err := t.backend.Create(value)
	if err != nil {
		return 0, err
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Value:  value,
	})

	return handle, nil
}

// Get retrieves a value by reference.
func (t *Table) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// Remove deletes a reference and returns its value.
// Fails with ErrOutstandingBorrow while the value is borrowed.
func (t *Table) Remove(handle Handle) (any, error) {
	value, err := t.backend.Drop(handle)
	if err != nil {
		return nil, err
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Value:  value,
	})

	return value, nil
}

// Borrow marks the value as borrowed and returns it.
func (t *Table) Borrow(handle Handle) (any, error) {
	value, n, err := t.backend.Borrow(handle)
	if err != nil {
		return nil, err
	}

	t.notify(Event{
		Type:    EventBorrowed,
		Handle:  handle,
		Value:   value,
		Borrows: n,
	})

	return value, nil
}

// ReturnBorrow ends one borrow of the value.
func (t *Table) ReturnBorrow(handle Handle) error {
	n, err := t.backend.ReturnBorrow(handle)
	if err != nil {
		return err
	}

	t.notify(Event{
		Type:    EventBorrowReturned,
		Handle:  handle,
		Borrows: n,
	})

	return nil
}

// Borrows returns the number of outstanding borrows for a reference.
func (t *Table) Borrows(handle Handle) (uint32, bool) {
	return t.backend.BorrowCount(handle)
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live references.
func (t *Table) Len() int {
	return t.backend.Len()
}

// Each iterates over all live references.
func (t *Table) Each(fn func(Handle, any) bool) {
	t.backend.Each(fn)
}

// Close releases all references and stops accepting new ones.
func (t *Table) Close() error {
	return t.backend.Close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
