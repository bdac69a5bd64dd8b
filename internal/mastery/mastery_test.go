package mastery

import (
	"math"
	"testing"
)

func TestLaplaceKnownValues(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{8, 10, 0.75},
		{0, 0, 0.5},
		{2, 10, 0.25},
		{0, 5, 1.0 / 7},
		{5, 5, 6.0 / 7},
		{90, 100, 91.0 / 102},
	}

	for _, tt := range tests {
		got := Laplace(tt.correct, tt.total)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Laplace(%d, %d) = %f, want %f", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestLaplaceBounds(t *testing.T) {
	for total := 0; total <= 200; total++ {
		for correct := 0; correct <= total; correct++ {
			m := Laplace(correct, total)
			if m <= 0 || m >= 1 {
				t.Fatalf("Laplace(%d, %d) = %f, want strictly inside (0,1)", correct, total, m)
			}
		}
	}
}

func TestLaplaceMonotonicInCorrect(t *testing.T) {
	for total := 1; total <= 200; total++ {
		prev := Laplace(0, total)
		for correct := 1; correct <= total; correct++ {
			m := Laplace(correct, total)
			if m <= prev {
				t.Fatalf("Laplace(%d, %d) = %f, not above Laplace(%d, %d) = %f", correct, total, m, correct-1, total, prev)
			}
			prev = m
		}
	}
}
