package resource

import (
	"errors"
	"sync"
	"testing"
)

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend()

	handle, err := b.Create("test value")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := b.Get(handle)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	val, err = b.Drop(handle)
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	if _, ok = b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
	if _, err = b.Drop(handle); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Expected ErrInvalidHandle on double drop, got %v", err)
	}
}

func TestLocalBackend_Borrow(t *testing.T) {
	b := NewLocalBackend()

	handle, _ := b.Create("chars")

	val, n, err := b.Borrow(handle)
	if err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	if val != "chars" || n != 1 {
		t.Fatalf("Borrow = (%v, %d), want (chars, 1)", val, n)
	}

	if _, err := b.Drop(handle); !errors.Is(err, ErrOutstandingBorrow) {
		t.Fatalf("Expected ErrOutstandingBorrow, got %v", err)
	}

	n, err = b.ReturnBorrow(handle)
	if err != nil || n != 0 {
		t.Fatalf("ReturnBorrow = (%d, %v), want (0, nil)", n, err)
	}

	if _, err := b.ReturnBorrow(handle); !errors.Is(err, ErrNotBorrowed) {
		t.Fatalf("Expected ErrNotBorrowed, got %v", err)
	}

	if _, err := b.Drop(handle); err != nil {
		t.Fatalf("Drop after returning borrow failed: %v", err)
	}
}

func TestLocalBackend_InvalidHandle(t *testing.T) {
	b := NewLocalBackend()

	if _, ok := b.Get(0); ok {
		t.Fatal("Handle 0 must be invalid")
	}
	if _, _, err := b.Borrow(42); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Expected ErrInvalidHandle, got %v", err)
	}
	if _, ok := b.BorrowCount(42); ok {
		t.Fatal("BorrowCount on unknown handle should fail")
	}
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := NewLocalBackend()

	h1, _ := b.Create("a")
	h2, _ := b.Create("b")
	if _, err := b.Drop(h1); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}

	h3, _ := b.Create("c")
	if h3 != h1 {
		t.Fatalf("Expected freed handle %d to be reused, got %d", h1, h3)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}

	seen := map[Handle]any{}
	b.Each(func(h Handle, v any) bool {
		seen[h] = v
		return true
	})
	if seen[h2] != "b" || seen[h3] != "c" {
		t.Fatalf("Each saw %v", seen)
	}
}

func TestLocalBackend_Close(t *testing.T) {
	b := NewLocalBackend()
	d := &dropCounter{}
	h, _ := b.Create(d)
	if _, _, err := b.Borrow(h); err != nil {
		t.Fatal(err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Expected borrowed value to be dropped on Close, count=%d", d.count)
	}
	if _, err := b.Create("late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := NewLocalBackend()
	h, _ := b.Create("shared")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, _, err := b.Borrow(h); err != nil {
					t.Error(err)
					return
				}
				if _, err := b.ReturnBorrow(h); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if n, _ := b.BorrowCount(h); n != 0 {
		t.Fatalf("BorrowCount = %d, want 0", n)
	}
}
