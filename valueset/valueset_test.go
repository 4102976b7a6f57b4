package valueset

import "testing"

func TestComplementOfEmptyIsFullUniverse(t *testing.T) {
	v := New(9)
	full := v.Complement()
	if full.Count() != 9 {
		t.Errorf("expected 9 candidates, got %d", full.Count())
	}
	for d := 1; d <= 9; d++ {
		if !full.Has(d) {
			t.Errorf("expected digit %d to be a candidate", d)
		}
	}
}

func TestUnion(t *testing.T) {
	a := New(9)
	a.Set(1)
	a.Set(2)
	a.Set(3)
	b := New(9)
	b.Set(3)
	b.Set(4)

	got := a.Union(b)
	want := []int{1, 2, 3, 4}
	if got.Count() != len(want) {
		t.Fatalf("Union: expected %d candidates, got %d", len(want), got.Count())
	}
	for _, d := range want {
		if !got.Has(d) {
			t.Errorf("Union: expected digit %d present", d)
		}
	}
}

func TestDiff(t *testing.T) {
	a := New(9)
	a.Set(1)
	a.Set(2)
	a.Set(3)
	b := New(9)
	b.Set(2)

	got := a.Diff(b)
	if got.Count() != 2 || !got.Has(1) || !got.Has(3) || got.Has(2) {
		t.Errorf("Diff: got %v, want {1,3}", got)
	}
}

func TestFixedAndIndex(t *testing.T) {
	v := Single(9, 5)
	if !v.Fixed() {
		t.Fatal("Single(9,5) should be fixed")
	}
	if v.Index() != 4 {
		t.Errorf("Index() = %d, want 4", v.Index())
	}
}

func TestEmpty(t *testing.T) {
	v := New(9)
	if !v.Empty() {
		t.Error("fresh ValueSet should be empty")
	}
	v.Set(1)
	if v.Empty() {
		t.Error("ValueSet with a bit set should not be empty")
	}
}

func TestXorRemovesSubset(t *testing.T) {
	v := New(9)
	v.Set(1)
	v.Set(2)
	v.Set(3)
	sub := New(9)
	sub.Set(2)

	got := v.Xor(sub)
	if got.Count() != 2 || got.Has(2) {
		t.Errorf("Xor with a subset should behave like Diff, got %v", got)
	}
}

func TestStringFixedCell(t *testing.T) {
	v := Single(9, 5)
	if s := v.String("123456789"); s != "5" {
		t.Errorf("String() = %q, want %q", s, "5")
	}
}

func TestStringUnfixedCell(t *testing.T) {
	v := New(9)
	v.Set(1)
	v.Set(3)
	if s := v.String("123456789"); s != "13" {
		t.Errorf("String() = %q, want %q", s, "13")
	}
}
