package history

import (
	"errors"
	"testing"

	"github.com/dshills/regionring/region"
)

func TestNewDefaultCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"positive", 5, 5},
		{"zero falls back", 0, DefaultCapacity},
		{"negative falls back", -3, DefaultCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.capacity)
			if r.Cap() != tt.want {
				t.Errorf("expected capacity %d, got %d", tt.want, r.Cap())
			}
			if !r.IsEmpty() {
				t.Error("expected new ring to be empty")
			}
		})
	}
}

func TestRecordNewestFirst(t *testing.T) {
	r := New(5)

	if !r.Record(region.New(1, 5)) {
		t.Fatal("expected first record to succeed")
	}
	if !r.Record(region.New(10, 20)) {
		t.Fatal("expected second record to succeed")
	}

	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}

	front, err := r.Latest(0)
	if err != nil {
		t.Fatalf("Latest(0) failed: %v", err)
	}
	if !front.Same(region.New(10, 20)) {
		t.Errorf("expected newest entry (10,20), got %v", front)
	}

	older, err := r.Latest(1)
	if err != nil {
		t.Fatalf("Latest(1) failed: %v", err)
	}
	if !older.Same(region.New(1, 5)) {
		t.Errorf("expected older entry (1,5), got %v", older)
	}
}

func TestRecordRejectsEmpty(t *testing.T) {
	r := New(3)

	if r.Record(region.New(7, 7)) {
		t.Error("expected degenerate region to be rejected")
	}
	if !r.IsEmpty() {
		t.Error("expected ring to stay empty after rejection")
	}
}

func TestRecordSuppressesFrontDuplicate(t *testing.T) {
	r := New(5)
	r.Record(region.New(1, 5))

	if r.Record(region.New(1, 5)) {
		t.Error("expected exact duplicate of newest to be rejected")
	}
	if r.Record(region.New(5, 1)) {
		t.Error("expected swapped duplicate of newest to be rejected")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}

func TestRecordSuppressesBackDuplicate(t *testing.T) {
	r := New(5)
	r.Record(region.New(1, 5))
	r.Record(region.New(10, 20))
	r.Record(region.New(30, 40))

	if r.Record(region.New(1, 5)) {
		t.Error("expected duplicate of oldest to be rejected")
	}
	if r.Record(region.New(5, 1)) {
		t.Error("expected swapped duplicate of oldest to be rejected")
	}
	if r.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", r.Len())
	}
}

func TestRecordAllowsInteriorDuplicate(t *testing.T) {
	r := New(10)
	r.Record(region.New(1, 5))
	r.Record(region.New(10, 20))
	r.Record(region.New(30, 40))

	// (10,20) is neither newest nor oldest, so it is admitted again.
	if !r.Record(region.New(10, 20)) {
		t.Error("expected interior duplicate to be accepted")
	}
	if r.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", r.Len())
	}
}

func TestRecordEvictsOldest(t *testing.T) {
	r := New(3)
	r.Record(region.New(1, 2))
	r.Record(region.New(3, 4))
	r.Record(region.New(5, 6))
	r.Record(region.New(7, 8))

	if r.Len() != 3 {
		t.Fatalf("expected ring to stay at capacity 3, got %d", r.Len())
	}

	want := []region.Region{
		region.New(7, 8),
		region.New(5, 6),
		region.New(3, 4),
	}
	got := r.Regions()
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Same(want[i]) {
			t.Errorf("regions[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRecordScenario(t *testing.T) {
	// Capacity 3: (1,5), (10,20), (1,5) rejected as duplicate of the
	// oldest, then (30,40) fills the ring.
	r := New(3)

	if !r.Record(region.New(1, 5)) {
		t.Fatal("expected (1,5) to be recorded")
	}
	if !r.Record(region.New(10, 20)) {
		t.Fatal("expected (10,20) to be recorded")
	}
	if r.Record(region.New(1, 5)) {
		t.Fatal("expected repeated (1,5) to be rejected")
	}
	if !r.Record(region.New(30, 40)) {
		t.Fatal("expected (30,40) to be recorded")
	}

	want := []region.Region{
		region.New(30, 40),
		region.New(10, 20),
		region.New(1, 5),
	}
	got := r.Regions()
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Same(want[i]) {
			t.Errorf("regions[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLatestEmpty(t *testing.T) {
	r := New(3)

	if _, err := r.Latest(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLatestWraparound(t *testing.T) {
	r := New(5)
	r.Record(region.New(1, 2)) // oldest
	r.Record(region.New(3, 4))
	r.Record(region.New(5, 6)) // newest

	tests := []struct {
		name   string
		offset int
		want   region.Region
	}{
		{"zero is newest", 0, region.New(5, 6)},
		{"one steps older", 1, region.New(3, 4)},
		{"two is oldest", 2, region.New(1, 2)},
		{"wraps past oldest", 3, region.New(5, 6)},
		{"wraps twice", 7, region.New(3, 4)},
		{"minus one is oldest", -1, region.New(1, 2)},
		{"minus two", -2, region.New(3, 4)},
		{"negative wraps", -4, region.New(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Latest(tt.offset)
			if err != nil {
				t.Fatalf("Latest(%d) failed: %v", tt.offset, err)
			}
			if !got.Same(tt.want) {
				t.Errorf("Latest(%d): expected %v, got %v", tt.offset, tt.want, got)
			}
		})
	}
}

func TestClear(t *testing.T) {
	r := New(3)
	r.Record(region.New(1, 2))
	r.Record(region.New(3, 4))

	r.Clear()

	if !r.IsEmpty() {
		t.Error("expected ring to be empty after Clear")
	}
	if r.Cap() != 3 {
		t.Errorf("expected capacity preserved, got %d", r.Cap())
	}
	if _, err := r.Latest(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty after Clear, got %v", err)
	}

	// The ring is usable again after clearing.
	if !r.Record(region.New(5, 6)) {
		t.Error("expected record after Clear to succeed")
	}
}

func TestSetCapacityShrink(t *testing.T) {
	r := New(5)
	r.Record(region.New(1, 2))
	r.Record(region.New(3, 4))
	r.Record(region.New(5, 6))
	r.Record(region.New(7, 8))

	if err := r.SetCapacity(2); err != nil {
		t.Fatalf("SetCapacity failed: %v", err)
	}

	if r.Cap() != 2 {
		t.Errorf("expected capacity 2, got %d", r.Cap())
	}
	want := []region.Region{
		region.New(7, 8),
		region.New(5, 6),
	}
	got := r.Regions()
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Same(want[i]) {
			t.Errorf("regions[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSetCapacityGrow(t *testing.T) {
	r := New(2)
	r.Record(region.New(1, 2))
	r.Record(region.New(3, 4))

	if err := r.SetCapacity(4); err != nil {
		t.Fatalf("SetCapacity failed: %v", err)
	}

	if r.Cap() != 4 {
		t.Errorf("expected capacity 4, got %d", r.Cap())
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 entries preserved, got %d", r.Len())
	}

	// Room for two more before eviction.
	r.Record(region.New(5, 6))
	r.Record(region.New(7, 8))
	if r.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", r.Len())
	}

	oldest, err := r.Latest(-1)
	if err != nil {
		t.Fatalf("Latest(-1) failed: %v", err)
	}
	if !oldest.Same(region.New(1, 2)) {
		t.Errorf("expected oldest (1,2), got %v", oldest)
	}
}

func TestSetCapacityInvalid(t *testing.T) {
	r := New(3)

	if err := r.SetCapacity(0); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("expected ErrInvalidCapacity for 0, got %v", err)
	}
	if err := r.SetCapacity(-1); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("expected ErrInvalidCapacity for -1, got %v", err)
	}
}

func TestRegionsSnapshot(t *testing.T) {
	r := New(3)
	r.Record(region.New(1, 2))
	r.Record(region.New(3, 4))

	snap := r.Regions()
	snap[0] = region.New(99, 100)

	front, err := r.Latest(0)
	if err != nil {
		t.Fatalf("Latest(0) failed: %v", err)
	}
	if !front.Same(region.New(3, 4)) {
		t.Errorf("expected ring unchanged by snapshot mutation, got %v", front)
	}
}
