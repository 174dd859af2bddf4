package risk

// Category classifies the project dimension a risk belongs to.
type Category string

const (
	CategoryCost     Category = "cost"
	CategorySchedule Category = "schedule"
	CategoryResource Category = "resource"
	CategoryOther    Category = "other"
)

// ImpactType selects which outcome dimensions a risk feeds into.
type ImpactType string

const (
	ImpactCost     ImpactType = "cost"
	ImpactSchedule ImpactType = "schedule"
	ImpactBoth     ImpactType = "both"
)

// Risk is a named uncertain factor with a probability distribution over its
// cost and/or schedule impact. Risks are treated as immutable once built; a
// modified risk is always a new value (see the scenario generator).
type Risk struct {
	ID             string
	Name           string
	Category       Category
	ImpactType     ImpactType
	Distribution   ProbabilityDistribution
	BaselineImpact float64

	// Probability is the chance the risk materializes in a given iteration.
	// Values outside (0, 1) mean the risk always applies.
	Probability float64

	// CorrelationDependencies lists related risk ids. Informational only;
	// actual joint sampling is driven by the CorrelationMatrix.
	CorrelationDependencies []string

	MitigationStrategies []string

	// MitigationApplied records that a scenario modification included a
	// mitigation. Reporting only; it does not alter sampling.
	MitigationApplied bool
}

// AffectsCost reports whether the risk feeds the cost outcome dimension.
func (r Risk) AffectsCost() bool {
	return r.ImpactType == ImpactCost || r.ImpactType == ImpactBoth
}

// AffectsSchedule reports whether the risk feeds the schedule outcome dimension.
func (r Risk) AffectsSchedule() bool {
	return r.ImpactType == ImpactSchedule || r.ImpactType == ImpactBoth
}

// AlwaysOccurs reports whether occurrence gating is disabled for this risk.
func (r Risk) AlwaysOccurs() bool {
	return r.Probability <= 0 || r.Probability >= 1
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (r Risk) Clone() Risk {
	out := r
	out.Distribution = r.Distribution.Clone()
	out.CorrelationDependencies = append([]string(nil), r.CorrelationDependencies...)
	out.MitigationStrategies = append([]string(nil), r.MitigationStrategies...)
	return out
}
