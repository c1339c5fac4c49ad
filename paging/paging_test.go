package paging

import "testing"

func TestStartProperty(t *testing.T) {
	for total := 1; total < 200; total++ {
		for sel := 0; sel < total; sel++ {
			s := Start(sel)
			if s%PageSize != 0 || s > sel || sel >= s+PageSize {
				t.Fatalf("Start(%d) = %d violates window property", sel, s)
			}
		}
	}
}

func TestFollowScenario(t *testing.T) {
	var w Window
	const total = 10
	if !w.Follow(9) {
		t.Fatal("Follow(9) should move the window")
	}
	if w.First() != 8 {
		t.Fatalf("First() = %d, want 8", w.First())
	}
	start, end := w.Visible(total)
	if start != 8 || end != 10 {
		t.Fatalf("Visible() = [%d, %d), want [8, 10)", start, end)
	}
	if !w.Follow(2) || w.First() != 0 {
		t.Fatalf("Follow(2) -> %d, want 0", w.First())
	}
	if w.Follow(5) {
		t.Fatal("Follow inside the current page should not move")
	}
}

func TestShrink(t *testing.T) {
	tests := []struct {
		first, total, want int
		moved              bool
	}{
		{16, 20, 16, false},
		{16, 16, 8, true},
		{16, 9, 8, true},
		{8, 0, 0, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		w := Window{first: tt.first}
		moved := w.Shrink(tt.total)
		if moved != tt.moved || w.First() != tt.want {
			t.Errorf("Shrink(%d) from %d = %d, %v, want %d, %v", tt.total, tt.first, w.First(), moved, tt.want, tt.moved)
		}
	}
}

func TestSet(t *testing.T) {
	var w Window
	if w.Set(12, 12) {
		t.Fatal("Set beyond total accepted")
	}
	if !w.Set(8, 12) || w.First() != 8 {
		t.Fatalf("Set(8, 12) -> %d", w.First())
	}
	if !w.Set(11, 12) || w.First() != 8 {
		t.Fatalf("Set(11, 12) should floor to 8, got %d", w.First())
	}
}

func TestSlot(t *testing.T) {
	w := Window{first: 8}
	if i, ok := w.Slot(1, 10); !ok || i != 9 {
		t.Fatalf("Slot(1) = %d, %v", i, ok)
	}
	if _, ok := w.Slot(2, 10); ok {
		t.Fatal("Slot past the end reported as present")
	}
}

func TestSendPages(t *testing.T) {
	if SendPageStart(0) != 0 || SendPageStart(1) != 6 || SendPageStart(2) != 14 {
		t.Fatalf("SendPageStart = %d %d %d", SendPageStart(0), SendPageStart(1), SendPageStart(2))
	}
	if p, changed := ClampSendPage(1, 4); !changed || p != 0 {
		t.Fatalf("ClampSendPage(1, 4) = %d, %v", p, changed)
	}
	if p, changed := ClampSendPage(1, 12); changed || p != 1 {
		t.Fatalf("ClampSendPage(1, 12) = %d, %v", p, changed)
	}
}
