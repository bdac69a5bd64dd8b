package bandit

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	SamplerNormal = "normal"
	SamplerExact  = "exact"
)

// Sampler draws one success-probability sample from Beta(alpha, beta).
type Sampler interface {
	Sample(r *rand.Rand, alpha, beta float64) float64
}

// NewSampler returns the sampler registered under name, defaulting to the
// normal approximation.
func NewSampler(name string) Sampler {
	if name == SamplerExact {
		return ExactSampler{}
	}
	return NormalSampler{}
}

// NormalSampler approximates Beta(alpha, beta) with a normal of the same
// mean and variance, drawn via Box-Muller and clamped to [0,1].
type NormalSampler struct{}

func (NormalSampler) Sample(r *rand.Rand, alpha, beta float64) float64 {
	mean := BetaMean(alpha, beta)
	stddev := math.Sqrt(BetaVariance(alpha, beta))
	return clamp01(mean + stddev*boxMuller(r))
}

// ExactSampler draws from the Beta distribution itself.
type ExactSampler struct{}

func (ExactSampler) Sample(r *rand.Rand, alpha, beta float64) float64 {
	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: r}
	return clamp01(d.Rand())
}

func BetaMean(alpha, beta float64) float64 {
	return alpha / (alpha + beta)
}

func BetaVariance(alpha, beta float64) float64 {
	sum := alpha + beta
	return alpha * beta / (sum * sum * (sum + 1))
}

// boxMuller returns one standard normal draw.
func boxMuller(r *rand.Rand) float64 {
	u1 := 1 - r.Float64() // (0,1], keeps the log finite
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
