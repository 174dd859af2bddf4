// Package projectrisk translates stored project records into simulation
// inputs and shapes domain-scoped analysis output.
package projectrisk

import (
	"sort"

	"github.com/projectlens/risksim/internal/domain/project"
	"github.com/projectlens/risksim/internal/domain/risk"
)

// likelySpread is the symmetric band applied around a lone likely-impact
// value when a record carries no other distribution information.
const likelySpread = 0.2

// RiskFromRecord derives a Risk from a stored record using a fixed heuristic:
//
//  1. low/likely/high all recorded: triangular over the three values,
//     reordered ascending so inconsistent entry order never fails validation;
//  2. mean and a positive std recorded: normal;
//  3. only a likely value recorded: triangular spanning +/-20% around it;
//  4. otherwise the record carries no quantifiable impact and is skipped
//     (ok = false).
//
// The translation is pure: same record in, same risk out.
func RiskFromRecord(rec *project.RiskRecord) (risk.Risk, bool) {
	dist, ok := distributionFromRecord(rec)
	if !ok {
		return risk.Risk{}, false
	}

	probability := rec.Probability
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	return risk.Risk{
		ID:                   rec.ID.String(),
		Name:                 rec.Name,
		Category:             rec.Category,
		ImpactType:           rec.ImpactType,
		Distribution:         dist,
		BaselineImpact:       nominalImpact(rec),
		Probability:          probability,
		MitigationStrategies: append([]string(nil), rec.MitigationStrategies...),
	}, true
}

func distributionFromRecord(rec *project.RiskRecord) (risk.ProbabilityDistribution, bool) {
	if rec.LowImpact != nil && rec.LikelyImpact != nil && rec.HighImpact != nil {
		values := []float64{*rec.LowImpact, *rec.LikelyImpact, *rec.HighImpact}
		sort.Float64s(values)
		dist, err := risk.NewProbabilityDistribution(risk.DistributionTriangular, map[string]float64{
			"min":  values[0],
			"mode": values[1],
			"max":  values[2],
		})
		if err != nil {
			return risk.ProbabilityDistribution{}, false
		}
		return dist, true
	}

	if rec.MeanImpact != nil && rec.StdImpact != nil && *rec.StdImpact > 0 {
		dist, err := risk.NewProbabilityDistribution(risk.DistributionNormal, map[string]float64{
			"mean": *rec.MeanImpact,
			"std":  *rec.StdImpact,
		})
		if err != nil {
			return risk.ProbabilityDistribution{}, false
		}
		return dist, true
	}

	if rec.LikelyImpact != nil {
		likely := *rec.LikelyImpact
		lo := likely * (1 - likelySpread)
		hi := likely * (1 + likelySpread)
		if lo > hi {
			lo, hi = hi, lo
		}
		dist, err := risk.NewProbabilityDistribution(risk.DistributionTriangular, map[string]float64{
			"min":  lo,
			"mode": likely,
			"max":  hi,
		})
		if err != nil {
			return risk.ProbabilityDistribution{}, false
		}
		return dist, true
	}

	return risk.ProbabilityDistribution{}, false
}

func nominalImpact(rec *project.RiskRecord) float64 {
	switch {
	case rec.LikelyImpact != nil:
		return *rec.LikelyImpact
	case rec.MeanImpact != nil:
		return *rec.MeanImpact
	case rec.HighImpact != nil:
		return *rec.HighImpact
	default:
		return 0
	}
}

// costRisks filters translated risks down to those feeding the cost outcome.
func costRisks(risks []risk.Risk) []risk.Risk {
	out := make([]risk.Risk, 0, len(risks))
	for _, r := range risks {
		if r.AffectsCost() {
			out = append(out, r)
		}
	}
	return out
}

// scheduleRisks filters translated risks down to those feeding the schedule
// outcome.
func scheduleRisks(risks []risk.Risk) []risk.Risk {
	out := make([]risk.Risk, 0, len(risks))
	for _, r := range risks {
		if r.AffectsSchedule() {
			out = append(out, r)
		}
	}
	return out
}

// resourceRisks filters translated risks down to the resource category.
func resourceRisks(risks []risk.Risk) []risk.Risk {
	out := make([]risk.Risk, 0, len(risks))
	for _, r := range risks {
		if r.Category == risk.CategoryResource {
			out = append(out, r)
		}
	}
	return out
}

// translateRecords converts all quantifiable records, preserving order.
func translateRecords(records []*project.RiskRecord) []risk.Risk {
	out := make([]risk.Risk, 0, len(records))
	for _, rec := range records {
		if r, ok := RiskFromRecord(rec); ok {
			out = append(out, r)
		}
	}
	return out
}
