package simulation

import (
	"fmt"

	"github.com/projectlens/risksim/internal/domain/risk"
)

// ScenarioGenerator builds named what-if variants of a base risk set. The
// base set is never mutated: modified risks are rebuilt from merged
// parameters and unmodified risks pass through as defensive copies, so the
// same base can safely feed repeated scenario generation.
type ScenarioGenerator struct{}

// NewScenarioGenerator creates a scenario generator.
func NewScenarioGenerator() *ScenarioGenerator {
	return &ScenarioGenerator{}
}

// Create applies modifications keyed by risk id to the base set. Parameter
// changes are a partial override merged into the target risk's distribution
// parameters and re-validated, so an invalid override fails here rather than
// at sampling time. Modifications referencing unknown risk ids are rejected.
func (g *ScenarioGenerator) Create(baseRisks []risk.Risk, modifications map[string]risk.RiskModification, name, description string) (*risk.Scenario, error) {
	known := make(map[string]struct{}, len(baseRisks))
	for _, r := range baseRisks {
		known[r.ID] = struct{}{}
	}
	for id := range modifications {
		if _, ok := known[id]; !ok {
			return nil, risk.NewPreconditionError("create_scenario", risk.ErrUnknownRiskID, id)
		}
	}

	variants := make([]risk.Risk, 0, len(baseRisks))
	for _, base := range baseRisks {
		mod, ok := modifications[base.ID]
		if !ok {
			variants = append(variants, base.Clone())
			continue
		}

		merged := make(map[string]float64, len(base.Distribution.Parameters)+len(mod.ParameterChanges))
		for k, v := range base.Distribution.Parameters {
			merged[k] = v
		}
		for k, v := range mod.ParameterChanges {
			merged[k] = v
		}

		dist, err := risk.NewProbabilityDistribution(base.Distribution.Type, merged, base.Distribution.Values...)
		if err != nil {
			return nil, fmt.Errorf("modification for risk %q: %w", base.ID, err)
		}

		variant := base.Clone()
		variant.Distribution = dist
		variant.MitigationApplied = mod.MitigationApplied
		variants = append(variants, variant)
	}

	return &risk.Scenario{
		Name:        name,
		Description: description,
		Risks:       variants,
	}, nil
}
