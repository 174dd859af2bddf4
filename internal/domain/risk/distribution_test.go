package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProbabilityDistribution_Valid(t *testing.T) {
	tests := []struct {
		name     string
		distType DistributionType
		params   map[string]float64
		values   []float64
	}{
		{
			name:     "normal",
			distType: DistributionNormal,
			params:   map[string]float64{"mean": 50000, "std": 12000},
		},
		{
			name:     "triangular",
			distType: DistributionTriangular,
			params:   map[string]float64{"min": 1000, "mode": 5000, "max": 20000},
		},
		{
			name:     "uniform",
			distType: DistributionUniform,
			params:   map[string]float64{"min": 0, "max": 100},
		},
		{
			name:     "lognormal",
			distType: DistributionLognormal,
			params:   map[string]float64{"mu": 9.2, "sigma": 0.4},
		},
		{
			name:     "custom",
			distType: DistributionCustom,
			params:   nil,
			values:   []float64{100, 250, 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := NewProbabilityDistribution(tt.distType, tt.params, tt.values...)
			require.NoError(t, err)
			assert.Equal(t, tt.distType, dist.Type)
		})
	}
}

func TestNewProbabilityDistribution_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		distType  DistributionType
		params    map[string]float64
		values    []float64
		parameter string
	}{
		{
			name:      "normal zero std",
			distType:  DistributionNormal,
			params:    map[string]float64{"mean": 10, "std": 0},
			parameter: "std",
		},
		{
			name:      "normal negative std",
			distType:  DistributionNormal,
			params:    map[string]float64{"mean": 10, "std": -3},
			parameter: "std",
		},
		{
			name:      "normal missing std",
			distType:  DistributionNormal,
			params:    map[string]float64{"mean": 10},
			parameter: "std",
		},
		{
			name:      "triangular mode below min",
			distType:  DistributionTriangular,
			params:    map[string]float64{"min": 10, "mode": 5, "max": 20},
			parameter: "mode",
		},
		{
			name:      "triangular mode above max",
			distType:  DistributionTriangular,
			params:    map[string]float64{"min": 10, "mode": 25, "max": 20},
			parameter: "mode",
		},
		{
			name:      "triangular min above max",
			distType:  DistributionTriangular,
			params:    map[string]float64{"min": 30, "mode": 30, "max": 20},
			parameter: "min",
		},
		{
			name:      "uniform inverted bounds",
			distType:  DistributionUniform,
			params:    map[string]float64{"min": 5, "max": 1},
			parameter: "min",
		},
		{
			name:      "lognormal zero sigma",
			distType:  DistributionLognormal,
			params:    map[string]float64{"mu": 1, "sigma": 0},
			parameter: "sigma",
		},
		{
			name:      "custom without values",
			distType:  DistributionCustom,
			parameter: "values",
		},
		{
			name:      "unsupported type",
			distType:  DistributionType("beta"),
			params:    map[string]float64{"alpha": 2, "beta": 5},
			parameter: "distribution_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProbabilityDistribution(tt.distType, tt.params, tt.values...)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.parameter, verr.Parameter)
		})
	}
}

func TestProbabilityDistribution_Clone(t *testing.T) {
	dist, err := NewProbabilityDistribution(DistributionNormal, map[string]float64{"mean": 10, "std": 2})
	require.NoError(t, err)

	clone := dist.Clone()
	clone.Parameters["mean"] = 999

	assert.Equal(t, 10.0, dist.Parameters["mean"])
}

func TestNewProbabilityDistribution_CopiesParams(t *testing.T) {
	params := map[string]float64{"mean": 10, "std": 2}
	dist, err := NewProbabilityDistribution(DistributionNormal, params)
	require.NoError(t, err)

	params["mean"] = -1
	assert.Equal(t, 10.0, dist.Parameters["mean"])
}
