package search

import "testing"

func TestCompositionsOrderPinned(t *testing.T) {
	got := Compositions(2, 3)
	want := [][]int{
		{0, 0, 2}, {0, 1, 1}, {0, 2, 0}, {1, 0, 1}, {1, 1, 0}, {2, 0, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len(got)=%d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d: %v vs %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("row %d: got %v want %v", i, got[i], want[i])
			}
		}
	}
}

func TestCompositionsSumToM(t *testing.T) {
	for m := 0; m <= 3; m++ {
		for k := 1; k <= 4; k++ {
			for _, row := range Compositions(m, k) {
				sum := 0
				for _, v := range row {
					sum += v
				}
				if sum != m || len(row) != k {
					t.Errorf("m=%d k=%d: bad row %v", m, k, row)
				}
			}
		}
	}
}
