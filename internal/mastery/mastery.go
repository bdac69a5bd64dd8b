package mastery

// Laplace returns the Laplace-smoothed mastery estimate for correct answers
// out of total attempts: the mean of Beta(correct+1, incorrect+1). The
// result is strictly inside (0,1) for any 0 <= correct <= total.
func Laplace(correct, total int) float64 {
	successes := float64(correct + 1)
	failures := float64(total - correct + 1)
	return successes / (successes + failures)
}
