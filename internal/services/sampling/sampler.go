// Package sampling draws random impact values from validated probability
// distributions, independently or jointly under a correlation structure.
package sampling

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/projectlens/risksim/internal/domain/risk"
	"github.com/projectlens/risksim/pkg/stats"
)

// quantileEps keeps quantile lookups away from the open endpoints of (0, 1)
// so unbounded families never return +/-Inf.
const quantileEps = 1e-12

// Sampler draws values from one probability distribution. Parameters are
// validated once at construction; Draw and Quantile assume a valid family.
type Sampler struct {
	distType risk.DistributionType

	// normal / lognormal
	mean, std, mu, sigma float64

	// triangular / uniform
	min, mode, max float64

	// custom empirical values, ascending
	values []float64
}

// NewSampler validates the distribution and precomputes its parameters.
func NewSampler(dist risk.ProbabilityDistribution) (*Sampler, error) {
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	s := &Sampler{distType: dist.Type}
	switch dist.Type {
	case risk.DistributionNormal:
		s.mean = dist.Parameters["mean"]
		s.std = dist.Parameters["std"]
	case risk.DistributionTriangular:
		s.min = dist.Parameters["min"]
		s.mode = dist.Parameters["mode"]
		s.max = dist.Parameters["max"]
	case risk.DistributionUniform:
		s.min = dist.Parameters["min"]
		s.max = dist.Parameters["max"]
	case risk.DistributionLognormal:
		s.mu = dist.Parameters["mu"]
		s.sigma = dist.Parameters["sigma"]
	case risk.DistributionCustom:
		s.values = stats.SortedCopy(dist.Values)
	}
	return s, nil
}

// Draw returns one random value from the distribution.
func (s *Sampler) Draw(rng *rand.Rand) float64 {
	switch s.distType {
	case risk.DistributionNormal:
		return s.mean + s.std*rng.NormFloat64()
	case risk.DistributionTriangular:
		return s.triangularQuantile(rng.Float64())
	case risk.DistributionUniform:
		return s.min + (s.max-s.min)*rng.Float64()
	case risk.DistributionLognormal:
		return math.Exp(s.mu + s.sigma*rng.NormFloat64())
	case risk.DistributionCustom:
		return s.values[rng.Intn(len(s.values))]
	}
	return 0
}

// Quantile returns the value at probability p, clamping p into the open unit
// interval so unbounded families stay finite. Used by the correlation
// injector to map correlated latents back onto each risk's marginal.
func (s *Sampler) Quantile(p float64) float64 {
	if p < quantileEps {
		p = quantileEps
	}
	if p > 1-quantileEps {
		p = 1 - quantileEps
	}

	switch s.distType {
	case risk.DistributionNormal:
		return distuv.Normal{Mu: s.mean, Sigma: s.std}.Quantile(p)
	case risk.DistributionTriangular:
		return s.triangularQuantile(p)
	case risk.DistributionUniform:
		return s.min + (s.max-s.min)*p
	case risk.DistributionLognormal:
		return distuv.LogNormal{Mu: s.mu, Sigma: s.sigma}.Quantile(p)
	case risk.DistributionCustom:
		return stats.PercentileSorted(s.values, p*100)
	}
	return 0
}

func (s *Sampler) triangularQuantile(u float64) float64 {
	width := s.max - s.min
	if width == 0 {
		return s.min
	}
	fc := (s.mode - s.min) / width
	if u < fc {
		return s.min + math.Sqrt(u*width*(s.mode-s.min))
	}
	return s.max - math.Sqrt((1-u)*width*(s.max-s.mode))
}
