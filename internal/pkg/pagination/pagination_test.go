package pagination

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{150, 20, 8},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestSlice_ConcatenationReproducesInput(t *testing.T) {
	items := make([]int, 47)
	for i := range items {
		items[i] = i
	}

	pages := TotalPages(len(items), DefaultLimit)
	var joined []int
	for p := 1; p <= pages; p++ {
		joined = append(joined, Slice(items, NewParams(p, DefaultLimit))...)
	}

	if len(joined) != len(items) {
		t.Fatalf("Expected %d items, got %d", len(items), len(joined))
	}
	for i := range items {
		if joined[i] != items[i] {
			t.Fatalf("Item %d: expected %d, got %d", i, items[i], joined[i])
		}
	}
}

func TestSlice_PastEnd(t *testing.T) {
	got := Slice([]string{"a", "b"}, NewParams(3, 20))
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestNewParams_CorrectsNonPositive(t *testing.T) {
	p := NewParams(0, 0)
	if p.Page != 1 || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("Unexpected params %+v", p)
	}

	p = NewParams(9, 500)
	if p.Page != 9 || p.Limit != MaxLimit {
		t.Errorf("Expected page kept and limit capped, got %+v", p)
	}
}

func TestNewParams_HugePageDoesNotOverflow(t *testing.T) {
	p := NewParams(922337203685477581, DefaultLimit)
	if p.Offset < 0 {
		t.Fatalf("Offset overflowed: %+v", p)
	}

	got := Slice(make([]int, 45), p)
	if len(got) != 0 {
		t.Errorf("Expected empty page, got %d items", len(got))
	}

	got = Slice(make([]int, 45), &Params{Page: 2, Limit: DefaultLimit, Offset: -16})
	if len(got) != 0 {
		t.Errorf("Negative offset should yield an empty page, got %d items", len(got))
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(10, 3); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := Clamp(-1, 3); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := Clamp(5, 0); got != 1 {
		t.Errorf("Expected 1 with no pages, got %d", got)
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(NewParams(2, 20), 45)
	if meta.TotalPages != 3 || !meta.HasNext || !meta.HasPrev || meta.Total != 45 {
		t.Errorf("Unexpected meta %+v", meta)
	}
}
