package core

import "testing"

func TestNextID(t *testing.T) {
	cases := []struct {
		name string
		c    Collection
		want int
	}{
		{"empty", Collection{}, 1},
		{"single", Collection{{ID: 1}}, 2},
		{"gap after delete", Collection{{ID: 1}, {ID: 2}}, 3},
		{"unordered ids", Collection{{ID: 7}, {ID: 3}}, 8},
	}
	for _, tc := range cases {
		if got := tc.c.NextID(); got != tc.want {
			t.Fatalf("%s: NextID()=%d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSortByDateIsStable(t *testing.T) {
	c := Collection{
		{ID: 1, Date: "2024-03-01"},
		{ID: 2, Date: "2024-01-01"},
		{ID: 3, Date: "2024-01-01"},
		{ID: 4, Date: "2024-02-01"},
	}
	c.SortByDate()

	wantIDs := []int{2, 3, 4, 1}
	for i, want := range wantIDs {
		if c[i].ID != want {
			t.Fatalf("position %d: id=%d, want %d (order %v)", i, c[i].ID, want, c)
		}
	}
}

func TestRemoveByID(t *testing.T) {
	c := Collection{{ID: 1}, {ID: 2}, {ID: 3}}

	out, ok := c.RemoveByID(2)
	if !ok {
		t.Fatalf("expected id 2 to be removed")
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("unexpected remainder: %v", out)
	}

	same, ok := c.RemoveByID(9999)
	if ok {
		t.Fatalf("expected no removal for unknown id")
	}
	if len(same) != 3 {
		t.Fatalf("collection changed on failed removal: %v", same)
	}
}
