package risk

import (
	"fmt"
	"math"
)

// DistributionType identifies a supported probability distribution family.
type DistributionType string

const (
	DistributionNormal     DistributionType = "normal"
	DistributionTriangular DistributionType = "triangular"
	DistributionUniform    DistributionType = "uniform"
	DistributionLognormal  DistributionType = "lognormal"
	DistributionCustom     DistributionType = "custom"
)

// ProbabilityDistribution describes the impact distribution of a risk.
// Parameters are validated once at construction; sampling code may assume a
// validated distribution.
type ProbabilityDistribution struct {
	Type       DistributionType
	Parameters map[string]float64

	// Values holds the empirical sample set for the custom family. It is
	// ignored for all other families.
	Values []float64
}

// requiredParameters lists the parameter keys each family must supply.
var requiredParameters = map[DistributionType][]string{
	DistributionNormal:     {"mean", "std"},
	DistributionTriangular: {"min", "mode", "max"},
	DistributionUniform:    {"min", "max"},
	DistributionLognormal:  {"mu", "sigma"},
	DistributionCustom:     nil,
}

// NewProbabilityDistribution constructs and validates a distribution.
// Incomplete or semantically invalid parameters fail here with a
// ValidationError naming the offending parameter, never at sampling time.
func NewProbabilityDistribution(distType DistributionType, params map[string]float64, values ...float64) (ProbabilityDistribution, error) {
	d := ProbabilityDistribution{
		Type:       distType,
		Parameters: copyParameters(params),
		Values:     append([]float64(nil), values...),
	}
	if err := d.Validate(); err != nil {
		return ProbabilityDistribution{}, err
	}
	return d, nil
}

// Validate checks parameter completeness and semantics for the family.
func (d ProbabilityDistribution) Validate() error {
	required, ok := requiredParameters[d.Type]
	if !ok {
		return NewValidationError("distribution_type", fmt.Sprintf("unsupported distribution type %q", d.Type))
	}
	for _, key := range required {
		v, present := d.Parameters[key]
		if !present {
			return NewValidationError(key, fmt.Sprintf("required by %s distribution but missing", d.Type))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(key, "must be a finite number")
		}
	}

	switch d.Type {
	case DistributionNormal:
		if d.Parameters["std"] <= 0 {
			return NewValidationError("std", "standard deviation must be positive")
		}
	case DistributionTriangular:
		minV, mode, maxV := d.Parameters["min"], d.Parameters["mode"], d.Parameters["max"]
		if minV > maxV {
			return NewValidationError("min", "min must not exceed max")
		}
		if mode < minV || mode > maxV {
			return NewValidationError("mode", "mode must lie within [min, max]")
		}
	case DistributionUniform:
		if d.Parameters["min"] > d.Parameters["max"] {
			return NewValidationError("min", "min must not exceed max")
		}
	case DistributionLognormal:
		if d.Parameters["sigma"] <= 0 {
			return NewValidationError("sigma", "sigma must be positive")
		}
	case DistributionCustom:
		if len(d.Values) == 0 {
			return NewValidationError("values", "custom distribution requires at least one value")
		}
		for _, v := range d.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValidationError("values", "must contain only finite numbers")
			}
		}
	}
	return nil
}

// Clone returns an independent deep copy.
func (d ProbabilityDistribution) Clone() ProbabilityDistribution {
	return ProbabilityDistribution{
		Type:       d.Type,
		Parameters: copyParameters(d.Parameters),
		Values:     append([]float64(nil), d.Values...),
	}
}

func copyParameters(params map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
