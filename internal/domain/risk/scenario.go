package risk

// RiskModification is a targeted override applied to a single risk when
// building a scenario. ParameterChanges is merged into the target risk's
// distribution parameters; keys not present keep their base value.
type RiskModification struct {
	ParameterChanges map[string]float64

	// MitigationApplied is recorded on the produced risk for reporting.
	MitigationApplied bool
}

// Scenario is a named variant risk set produced by applying modifications to a
// base set. Risks holds the effective post-modification set in base order.
type Scenario struct {
	Name        string
	Description string
	Risks       []Risk
}
