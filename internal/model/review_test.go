package model

import "testing"

func TestAverageRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{4}, 4},
		{"two", []int{4, 5}, 4.5},
		{"repeating", []int{1, 2, 2}, 1.7},
		{"half rounds up", []int{2, 2, 2, 3}, 2.3},
		{"zero scores", []int{0, 0, 1}, 0.3},
		{"all zero", []int{0, 0}, 0},
		{"negative", []int{-1, -2}, -1.5},
		{"negative half away from zero", []int{-2, -2, -2, -3}, -2.3},
		{"mixed sign", []int{-1, 0, 0}, -0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sum int64
			for _, s := range tt.scores {
				sum += int64(s)
			}
			if got := AverageRating(sum, int64(len(tt.scores))); got != tt.want {
				t.Errorf("AverageRating = %v, want %v", got, tt.want)
			}
		})
	}
}
