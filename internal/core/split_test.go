package core

import (
	"fmt"
	"slices"
	"testing"
)

func fileNames(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = fmt.Sprintf("/data/f%03d.csv", i)
	}
	return out
}

func groupSizes(groups [][]string) []int {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g)
	}
	return sizes
}

func TestPartition_Sizes(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		advice int
		want   []int
	}{
		{"remainder goes to last group", 10, 3, []int{3, 3, 4}},
		{"even split", 9, 3, []int{3, 3, 3}},
		{"advice equals total", 4, 4, []int{1, 1, 1, 1}},
		{"advice above total", 5, 100, []int{1, 1, 1, 1, 1}},
		{"zero advice", 3, 0, []int{1, 1, 1}},
		{"negative advice", 2, -7, []int{1, 1}},
		{"single group", 7, 1, []int{7}},
		{"large remainder folded into last", 10, 6, []int{1, 1, 1, 1, 1, 5}},
		{"single file", 1, 8, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupSizes(Partition(fileNames(tt.total), tt.advice))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Partition(%d files, %d) sizes = %v, want %v", tt.total, tt.advice, got, tt.want)
			}
		})
	}
}

func TestPartition_Empty(t *testing.T) {
	if got := Partition(nil, 4); got != nil {
		t.Errorf("Partition(nil, 4) = %v, want nil", got)
	}
}

func TestPartition_ExhaustiveAndDisjoint(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for advice := -1; advice <= total+2; advice++ {
			files := fileNames(total)
			groups := Partition(files, advice)

			var joined []string
			for _, g := range groups {
				if len(g) == 0 {
					t.Fatalf("total=%d advice=%d: empty group", total, advice)
				}
				joined = append(joined, g...)
			}
			if !slices.Equal(joined, files) {
				t.Fatalf("total=%d advice=%d: groups %v do not cover input in order", total, advice, groups)
			}
			if advice >= 1 && advice <= total && len(groups) != advice {
				t.Fatalf("total=%d advice=%d: got %d groups", total, advice, len(groups))
			}
		}
	}
}

func TestPartition_GroupsDoNotAliasInput(t *testing.T) {
	files := fileNames(4)
	groups := Partition(files, 2)

	groups[0][0] = "changed"
	if files[0] == "changed" {
		t.Error("mutating a group changed the input slice")
	}

	groups[0] = append(groups[0], "extra")
	if groups[1][0] != "/data/f002.csv" {
		t.Errorf("appending to group 0 clobbered group 1: %v", groups[1])
	}
}
