// Package resource provides a local reference table with borrow tracking.
//
// Host runtimes hand out local references to string objects. A reference
// stays valid until it is deleted, and while a caller holds a borrowed view
// of the object's characters the reference cannot be deleted.
//
// # Reference Lifecycle
//
//	Insert        - create a reference to a value
//	Borrow        - start a borrowed view (increments the borrow count)
//	ReturnBorrow  - end a borrowed view
//	Remove        - delete the reference (fails while borrowed)
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	h, _ := table.Insert(obj)
//	v, _ := table.Borrow(h)
//	// ... read v ...
//	_ = table.ReturnBorrow(h)
//	_, _ = table.Remove(h)
//
// Handle 0 is never issued and stands for the null reference.
//
// # Observers
//
// Observers see every lifecycle event:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("ref %d %s", e.Handle, e.Type)
//	}))
//
// # Memory Management
//
// References are not garbage collected. Values implementing Dropper are
// dropped when their reference is removed or the table is closed.
package resource
