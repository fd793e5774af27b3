package cart

import "testing"

func price(v float64) *float64 { return &v }

func assertUniqueIDs(t *testing.T, s *Store) {
	t.Helper()

	seen := map[string]bool{}
	for _, l := range s.Lines() {
		if seen[l.ID] {
			t.Fatalf("duplicate line for item %q", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s := NewStore()
	a := Item{ID: "a", Name: "Flow Yoga", Price: price(10)}

	s.Add(a)
	if got := s.Total(); got != 10.0 {
		t.Fatalf("total after first add = %v, want 10", got)
	}

	s.Add(a)
	assertUniqueIDs(t, s)

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", lines[0].Quantity)
	}
	if got := s.Total(); got != 20.0 {
		t.Fatalf("total = %v, want 20", got)
	}
}

func TestDecreaseRemovesLineAtQuantityOne(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "a", Price: price(10)})
	s.Add(Item{ID: "a", Price: price(10)})

	s.Decrease("a")
	if got := s.Total(); got != 10.0 {
		t.Fatalf("total = %v, want 10", got)
	}

	s.Decrease("a")
	if got := s.Len(); got != 0 {
		t.Fatalf("len = %d, want 0 (quantity-1 line must be removed)", got)
	}
	if got := s.Total(); got != 0.0 {
		t.Fatalf("total = %v, want 0", got)
	}

	for _, l := range s.Lines() {
		if l.Quantity <= 0 {
			t.Fatalf("line %q has quantity %d", l.ID, l.Quantity)
		}
	}
}

func TestMutationsOnUnknownIDAreNoOps(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "a", Price: price(5)})

	fired := 0
	s.OnChange(func() { fired++ })

	s.Increase("zzz")
	s.Decrease("zzz")
	s.Remove("zzz")

	if fired != 0 {
		t.Fatalf("change hook fired %d times for no-op mutations", fired)
	}
	if got := s.Total(); got != 5.0 {
		t.Fatalf("total = %v, want 5", got)
	}
}

func TestTotalTreatsMissingPriceAsZero(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "a", Price: price(7.5)})
	s.Add(Item{ID: "b"}) // no price
	s.Add(Item{ID: "b"})

	if got := s.Total(); got != 7.5 {
		t.Fatalf("total = %v, want 7.5", got)
	}

	// The absent price stays absent, it is never coerced to 0.
	for _, l := range s.Lines() {
		if l.ID == "b" && l.Price != nil {
			t.Fatalf("price for b = %v, want nil", *l.Price)
		}
	}
}

func TestInvariantHoldsAcrossOperationSequences(t *testing.T) {
	ops := []struct {
		name string
		run  func(*Store)
	}{
		{"add a", func(s *Store) { s.Add(Item{ID: "a", Price: price(1)}) }},
		{"add b", func(s *Store) { s.Add(Item{ID: "b", Price: price(2)}) }},
		{"add a again", func(s *Store) { s.Add(Item{ID: "a", Price: price(1)}) }},
		{"increase b", func(s *Store) { s.Increase("b") }},
		{"decrease a", func(s *Store) { s.Decrease("a") }},
		{"remove b", func(s *Store) { s.Remove("b") }},
		{"add c", func(s *Store) { s.Add(Item{ID: "c"}) }},
		{"decrease a to removal", func(s *Store) { s.Decrease("a") }},
		{"decrease c to removal", func(s *Store) { s.Decrease("c") }},
	}

	s := NewStore()
	for _, op := range ops {
		op.run(s)
		assertUniqueIDs(t, s)
		for _, l := range s.Lines() {
			if l.Quantity < 1 {
				t.Fatalf("after %q: line %q quantity %d", op.name, l.ID, l.Quantity)
			}
		}
	}

	if got := s.Len(); got != 0 {
		t.Fatalf("len = %d, want 0 after full drain", got)
	}
}

func TestReplaceAllAndClearDoNotFireChangeHook(t *testing.T) {
	s := NewStore()

	fired := 0
	s.OnChange(func() { fired++ })

	s.ReplaceAll([]Line{{Item: Item{ID: "x", Price: price(5)}, Quantity: 2}})
	s.Clear()

	if fired != 0 {
		t.Fatalf("change hook fired %d times for install/clear", fired)
	}
}

func TestReplaceAllInstallsSnapshot(t *testing.T) {
	s := NewStore()
	s.Add(Item{ID: "old", Price: price(99)})

	s.ReplaceAll([]Line{{Item: Item{ID: "x", Price: price(5)}, Quantity: 2}})

	lines := s.Lines()
	if len(lines) != 1 || lines[0].ID != "x" || lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v, want single x qty 2", lines)
	}
	if got := s.Total(); got != 10.0 {
		t.Fatalf("total = %v, want 10", got)
	}
}

func TestReplaceAllCopiesInput(t *testing.T) {
	s := NewStore()
	src := []Line{{Item: Item{ID: "x"}, Quantity: 1}}
	s.ReplaceAll(src)

	src[0].Quantity = 42
	if got := s.Lines()[0].Quantity; got != 1 {
		t.Fatalf("store shares caller slice: quantity = %d", got)
	}
}

func TestChangeHookFiresPerStateChange(t *testing.T) {
	s := NewStore()

	fired := 0
	s.OnChange(func() { fired++ })

	s.Add(Item{ID: "a"})
	s.Add(Item{ID: "a"})
	s.Increase("a")
	s.Decrease("a")
	s.Remove("a")

	if fired != 5 {
		t.Fatalf("change hook fired %d times, want 5", fired)
	}
}
