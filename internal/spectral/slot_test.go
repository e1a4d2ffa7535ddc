package spectral

import "testing"

func TestSlotRoundTrip(t *testing.T) {
	s := &Slot{}

	if _, ok := s.TryTake(); ok {
		t.Fatal("empty slot must report no data")
	}

	in := []float64{1, 2, 3}
	if !s.TryPublish(in) {
		t.Fatal("uncontended publish must succeed")
	}

	out, ok := s.TryTake()
	if !ok {
		t.Fatal("expected data after publish")
	}
	if len(out) != 3 || out[0] != 1 || out[2] != 3 {
		t.Fatalf("unexpected spectrum: %v", out)
	}

	if _, ok := s.TryTake(); ok {
		t.Fatal("second take must report the spectrum consumed")
	}
}

func TestSlotCopiesBothWays(t *testing.T) {
	s := &Slot{}
	in := []float64{5, 6}
	s.TryPublish(in)
	in[0] = 99

	out, _ := s.TryTake()
	if out[0] != 5 {
		t.Fatalf("writer mutation leaked into slot: %v", out)
	}

	s.TryPublish([]float64{7, 8})
	out[0] = -1
	again, _ := s.TryTake()
	if again[0] != 7 {
		t.Fatalf("reader mutation leaked into slot: %v", again)
	}
}

func TestSlotGivesUpUnderContention(t *testing.T) {
	s := &Slot{}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.TryPublish([]float64{1}) {
		t.Fatal("publish must skip while the slot is held")
	}
	if _, ok := s.TryTake(); ok {
		t.Fatal("take must skip while the slot is held")
	}
}
