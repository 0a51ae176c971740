package history

import (
	"errors"
	"testing"

	"github.com/dshills/regionring/region"
)

func TestRegistryGetCreatesLazily(t *testing.T) {
	reg := NewRegistry(5)

	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d rings", reg.Len())
	}

	ring := reg.Get("a.go")
	if ring == nil {
		t.Fatal("expected Get to create a ring")
	}
	if ring.Cap() != 5 {
		t.Errorf("expected capacity 5, got %d", ring.Cap())
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 ring, got %d", reg.Len())
	}

	// Same buffer returns the same ring.
	if reg.Get("a.go") != ring {
		t.Error("expected Get to return the existing ring")
	}
}

func TestRegistryRingsIndependent(t *testing.T) {
	reg := NewRegistry(5)

	reg.Get("a.go").Record(region.New(1, 5))
	reg.Get("b.go").Record(region.New(10, 20))

	a, err := reg.Get("a.go").Latest(0)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !a.Same(region.New(1, 5)) {
		t.Errorf("expected a.go ring to hold (1,5), got %v", a)
	}

	b, err := reg.Get("b.go").Latest(0)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !b.Same(region.New(10, 20)) {
		t.Errorf("expected b.go ring to hold (10,20), got %v", b)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(3)

	if _, ok := reg.Lookup("a.go"); ok {
		t.Error("expected Lookup to miss before Get")
	}

	reg.Get("a.go")

	ring, ok := reg.Lookup("a.go")
	if !ok {
		t.Fatal("expected Lookup to hit after Get")
	}
	if ring == nil {
		t.Fatal("expected Lookup to return the ring")
	}

	// Lookup never creates.
	if reg.Len() != 1 {
		t.Errorf("expected 1 ring, got %d", reg.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry(3)
	reg.Get("a.go").Record(region.New(1, 5))

	reg.Remove("a.go")

	if _, ok := reg.Lookup("a.go"); ok {
		t.Error("expected ring to be removed")
	}

	// A fresh ring is created on the next Get.
	if !reg.Get("a.go").IsEmpty() {
		t.Error("expected a fresh ring after Remove")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	reg := NewRegistry(3)
	reg.Get("c.go")
	reg.Get("a.go")
	reg.Get("b.go")

	want := []BufferID{"a.go", "b.go", "c.go"}
	got := reg.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRegistrySetDefaultCapacity(t *testing.T) {
	reg := NewRegistry(5)
	ring := reg.Get("a.go")
	ring.Record(region.New(1, 2))
	ring.Record(region.New(3, 4))
	ring.Record(region.New(5, 6))

	if err := reg.SetDefaultCapacity(2); err != nil {
		t.Fatalf("SetDefaultCapacity failed: %v", err)
	}

	if reg.DefaultCapacity() != 2 {
		t.Errorf("expected default capacity 2, got %d", reg.DefaultCapacity())
	}

	// Existing rings are resized, keeping the newest entries.
	if ring.Cap() != 2 {
		t.Errorf("expected existing ring resized to 2, got %d", ring.Cap())
	}
	front, err := ring.Latest(0)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !front.Same(region.New(5, 6)) {
		t.Errorf("expected newest (5,6) kept, got %v", front)
	}

	// New rings pick up the new capacity.
	if reg.Get("b.go").Cap() != 2 {
		t.Errorf("expected new ring capacity 2, got %d", reg.Get("b.go").Cap())
	}
}

func TestRegistrySetDefaultCapacityInvalid(t *testing.T) {
	reg := NewRegistry(5)

	if err := reg.SetDefaultCapacity(0); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("expected ErrInvalidCapacity, got %v", err)
	}
	if reg.DefaultCapacity() != 5 {
		t.Errorf("expected capacity unchanged on error, got %d", reg.DefaultCapacity())
	}
}

func TestRegistryDefaultCapacityFallback(t *testing.T) {
	reg := NewRegistry(0)

	if reg.DefaultCapacity() != DefaultCapacity {
		t.Errorf("expected fallback to DefaultCapacity, got %d", reg.DefaultCapacity())
	}
}
