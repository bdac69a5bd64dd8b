package bandit

import (
	"math"
	"testing"
)

func TestBetaMoments(t *testing.T) {
	tests := []struct {
		alpha, beta  float64
		mean, varnce float64
	}{
		{1, 1, 0.5, 1.0 / 12},
		{9, 3, 0.75, 27.0 / (144 * 13)},
		{3, 9, 0.25, 27.0 / (144 * 13)},
	}

	for _, tt := range tests {
		if got := BetaMean(tt.alpha, tt.beta); math.Abs(got-tt.mean) > 1e-12 {
			t.Errorf("BetaMean(%v, %v) = %v, want %v", tt.alpha, tt.beta, got, tt.mean)
		}
		if got := BetaVariance(tt.alpha, tt.beta); math.Abs(got-tt.varnce) > 1e-12 {
			t.Errorf("BetaVariance(%v, %v) = %v, want %v", tt.alpha, tt.beta, got, tt.varnce)
		}
	}
}

func TestSamplersStayInUnitIntervalAndTrackMean(t *testing.T) {
	samplers := map[string]Sampler{
		SamplerNormal: NormalSampler{},
		SamplerExact:  ExactSampler{},
	}
	params := [][2]float64{{1, 1}, {9, 3}, {2, 9}, {91, 11}}

	for name, s := range samplers {
		r := NewSeededSource(7).New()
		for _, p := range params {
			const n = 20000
			sum := 0.0
			for i := 0; i < n; i++ {
				x := s.Sample(r, p[0], p[1])
				if x < 0 || x > 1 {
					t.Fatalf("%s: sample %v outside [0,1] for Beta(%v,%v)", name, x, p[0], p[1])
				}
				sum += x
			}
			got := sum / n
			want := BetaMean(p[0], p[1])
			if math.Abs(got-want) > 0.02 {
				t.Errorf("%s: mean of Beta(%v,%v) samples = %v, want ~%v", name, p[0], p[1], got, want)
			}
		}
	}
}

func TestNewSampler(t *testing.T) {
	if _, ok := NewSampler(SamplerExact).(ExactSampler); !ok {
		t.Errorf("NewSampler(%q) should return ExactSampler", SamplerExact)
	}
	if _, ok := NewSampler(SamplerNormal).(NormalSampler); !ok {
		t.Errorf("NewSampler(%q) should return NormalSampler", SamplerNormal)
	}
	if _, ok := NewSampler("").(NormalSampler); !ok {
		t.Errorf("NewSampler(\"\") should default to NormalSampler")
	}
}

func TestClamp01(t *testing.T) {
	for in, want := range map[float64]float64{-0.3: 0, 0: 0, 0.4: 0.4, 1: 1, 1.7: 1} {
		if got := clamp01(in); got != want {
			t.Errorf("clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := NewSeededSource(99)
	b := NewSeededSource(99)

	for stream := 0; stream < 3; stream++ {
		ra, rb := a.New(), b.New()
		for i := 0; i < 10; i++ {
			if x, y := ra.Uint64(), rb.Uint64(); x != y {
				t.Fatalf("stream %d draw %d: %d != %d", stream, i, x, y)
			}
		}
	}

	// Successive generators from one source must differ.
	c := NewSeededSource(99)
	if c.New().Uint64() == c.New().Uint64() {
		t.Error("consecutive generators from a seeded source produced the same first draw")
	}
}
