package queue

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreFIFO(t *testing.T) {
	s := NewMemoryStore()
	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		s.Enqueue("roundA", u)
	}
	for _, want := range users {
		got, ok := s.PopFront("roundA")
		if !ok {
			t.Fatalf("expect entry %s, queue empty", want)
		}
		if got != want {
			t.Fatalf("expect %s, got %s", want, got)
		}
	}
	if _, ok := s.PopFront("roundA"); ok {
		t.Fatal("expect empty queue after popping all entries")
	}
}

func TestStoreEnqueueIdempotent(t *testing.T) {
	s := NewMemoryStore()
	if !s.Enqueue("roundA", "u1") {
		t.Fatal("first enqueue should append")
	}
	if s.Enqueue("roundA", "u1") {
		t.Fatal("duplicate enqueue should be a no-op")
	}
	if got := s.Length("roundA"); got != 1 {
		t.Fatalf("expect length 1, got %d", got)
	}
}

func TestStorePositionOf(t *testing.T) {
	s := NewMemoryStore()
	s.Enqueue("roundA", "u1")
	s.Enqueue("roundA", "u2")
	s.Enqueue("roundA", "u3")
	if got := s.PositionOf("roundA", "u2"); got != 1 {
		t.Fatalf("expect position 1 for u2, got %d", got)
	}
	if got := s.PositionOf("roundA", "absent"); got != PositionNotQueued {
		t.Fatalf("expect sentinel for absent user, got %d", got)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewMemoryStore()
	s.Enqueue("roundA", "u1")
	s.Enqueue("roundA", "u2")
	s.Enqueue("roundA", "u3")
	s.Remove("roundA", "u2")
	if got := s.Length("roundA"); got != 2 {
		t.Fatalf("expect length 2 after remove, got %d", got)
	}
	if got := s.PositionOf("roundA", "u3"); got != 1 {
		t.Fatalf("expect u3 to shift to position 1, got %d", got)
	}
	// absent user: no-op
	s.Remove("roundA", "absent")
	if got := s.Length("roundA"); got != 2 {
		t.Fatalf("expect length unchanged, got %d", got)
	}
}

func TestStoreRoundIsolation(t *testing.T) {
	s := NewMemoryStore()
	s.Enqueue("roundA", "u1")
	s.Enqueue("roundB", "u1")
	s.Enqueue("roundB", "u2")
	s.PopFront("roundA")
	s.Remove("roundA", "u2")
	if got := s.Length("roundB"); got != 2 {
		t.Fatalf("mutations on roundA changed roundB, length %d", got)
	}
}

func TestStoreConcurrentEnqueue(t *testing.T) {
	s := NewMemoryStore()
	n := 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s.Enqueue("roundA", fmt.Sprintf("u%d", i))
		}(i)
	}
	wg.Wait()
	if got := s.Length("roundA"); got != n {
		t.Fatalf("expect %d entries, got %d", n, got)
	}
	seen := make(map[string]bool, n)
	for {
		u, ok := s.PopFront("roundA")
		if !ok {
			break
		}
		if seen[u] {
			t.Fatalf("duplicate entry %s", u)
		}
		seen[u] = true
	}
	if len(seen) != n {
		t.Fatalf("lost updates: %d distinct entries", len(seen))
	}
}
