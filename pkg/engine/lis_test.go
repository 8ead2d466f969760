package engine

import "testing"

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"mixed", []int{2, 3, 1, 5, 6, 8, 7, 9, 4}, []int{0, 1, 3, 4, 6, 7}},
		{"decreasing", []int{5, 4, 3, 2, 1}, []int{4}},
		{"empty", []int{}, []int{}},
		{"single", []int{1}, []int{0}},
		{"increasing", []int{1, 2, 3, 4}, []int{0, 1, 2, 3}},
		{"valley", []int{10, 30, 20, 40}, []int{0, 2, 3}},
		{"zeros excluded", []int{0, 2, 0, 3}, []int{1, 3}},
		{"all zeros", []int{0, 0, 0}, []int{}},
		{"keyed diff shape", []int{3, 1, 0}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LongestIncreasingSubsequence(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("LIS(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("LIS(%v) = %v, want %v", tt.in, got, tt.want)
					break
				}
			}
		})
	}
}

func BenchmarkLIS(b *testing.B) {
	arr := make([]int, 1024)
	for i := range arr {
		arr[i] = (i * 7919) % 1024
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		LongestIncreasingSubsequence(arr)
	}
}
