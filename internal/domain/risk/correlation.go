package risk

import (
	"fmt"
	"math"
	"sort"
)

// pairKey is an unordered risk-id pair in canonical order.
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// CorrelationMatrix is a sparse mapping from unordered risk-id pairs to a
// coefficient in [-1, 1]. Pairs not present default to independence. The full
// participating risk-id list is fixed at construction and used to reject
// unknown ids.
type CorrelationMatrix struct {
	ids    []string
	index  map[string]int
	coeffs map[pairKey]float64
}

// NewCorrelationMatrix creates an empty matrix over the given risk ids.
func NewCorrelationMatrix(riskIDs []string) (*CorrelationMatrix, error) {
	index := make(map[string]int, len(riskIDs))
	ids := make([]string, 0, len(riskIDs))
	for _, id := range riskIDs {
		if id == "" {
			return nil, NewValidationError("risk_ids", "risk id cannot be empty")
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRiskID, id)
		}
		index[id] = len(ids)
		ids = append(ids, id)
	}
	return &CorrelationMatrix{
		ids:    ids,
		index:  index,
		coeffs: make(map[pairKey]float64),
	}, nil
}

// Set records the coefficient for a risk pair. Coefficients outside [-1, 1],
// unknown ids, self pairs, and conflicting re-specification are rejected.
// Setting the same pair to the same value again is a no-op.
func (m *CorrelationMatrix) Set(a, b string, coeff float64) error {
	if math.IsNaN(coeff) || coeff < -1 || coeff > 1 {
		return fmt.Errorf("%w: got %v for (%s, %s)", ErrCoefficientOutOfRange, coeff, a, b)
	}
	if a == b {
		return fmt.Errorf("%w: %q", ErrSelfCorrelation, a)
	}
	for _, id := range []string{a, b} {
		if _, ok := m.index[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRiskID, id)
		}
	}
	key := newPairKey(a, b)
	if existing, ok := m.coeffs[key]; ok && existing != coeff {
		return fmt.Errorf("%w: (%s, %s) already set to %v, got %v", ErrConflictingCoefficient, key.a, key.b, existing, coeff)
	}
	m.coeffs[key] = coeff
	return nil
}

// Coefficient returns the configured coefficient for a pair, or (0, false)
// when the pair is independent.
func (m *CorrelationMatrix) Coefficient(a, b string) (float64, bool) {
	v, ok := m.coeffs[newPairKey(a, b)]
	return v, ok
}

// RiskIDs returns the participating risk ids in construction order.
func (m *CorrelationMatrix) RiskIDs() []string {
	return append([]string(nil), m.ids...)
}

// Len returns the number of participating risks.
func (m *CorrelationMatrix) Len() int {
	return len(m.ids)
}

// PairCount returns the number of configured pairs.
func (m *CorrelationMatrix) PairCount() int {
	return len(m.coeffs)
}

// Pairs returns the configured pairs in deterministic order.
func (m *CorrelationMatrix) Pairs() []CorrelationPair {
	out := make([]CorrelationPair, 0, len(m.coeffs))
	for key, coeff := range m.coeffs {
		out = append(out, CorrelationPair{RiskA: key.a, RiskB: key.b, Coefficient: coeff})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RiskA != out[j].RiskA {
			return out[i].RiskA < out[j].RiskA
		}
		return out[i].RiskB < out[j].RiskB
	})
	return out
}

// CorrelationPair is one configured pairwise coefficient.
type CorrelationPair struct {
	RiskA       string
	RiskB       string
	Coefficient float64
}
