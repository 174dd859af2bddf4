package sampling

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/projectlens/risksim/internal/domain/risk"
)

// eigenFloor is the eigenvalue clip applied by the nearest-PSD projection.
const eigenFloor = 1e-10

// CorrelatedSampler produces jointly correlated draws for a set of risks.
// Correlated standard-normal latents are generated through the Cholesky
// factor of the embedded correlation matrix, then mapped through each risk's
// quantile function so every marginal keeps its own shape. Risks absent from
// the matrix default to independence.
type CorrelatedSampler struct {
	ids      []string
	samplers []*Sampler
	factor   *mat.TriDense
	latent   []float64

	projected bool
}

// NewCorrelatedSampler builds the joint sampler for risks in the given order.
// A sparse matrix over a subset of the risks is embedded into the full
// structure with unit diagonal and zeros elsewhere. A non-positive-definite
// structure is repaired by a deterministic nearest-PSD projection (eigenvalue
// clipping followed by diagonal renormalization); if the repaired matrix still
// cannot be factorized, ErrNotPositiveDefinite is returned.
func NewCorrelatedSampler(risks []risk.Risk, matrix *risk.CorrelationMatrix) (*CorrelatedSampler, error) {
	k := len(risks)
	if k == 0 {
		return nil, risk.ErrEmptyRiskSet
	}

	cs := &CorrelatedSampler{
		ids:      make([]string, k),
		samplers: make([]*Sampler, k),
		latent:   make([]float64, k),
	}
	index := make(map[string]int, k)
	for i, r := range risks {
		sampler, err := NewSampler(r.Distribution)
		if err != nil {
			return nil, fmt.Errorf("risk %q: %w", r.ID, err)
		}
		cs.ids[i] = r.ID
		cs.samplers[i] = sampler
		index[r.ID] = i
	}

	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		sym.SetSym(i, i, 1)
	}
	if matrix != nil {
		for _, pair := range matrix.Pairs() {
			i, ok := index[pair.RiskA]
			if !ok {
				return nil, fmt.Errorf("%w: %q", risk.ErrUnknownRiskID, pair.RiskA)
			}
			j, ok := index[pair.RiskB]
			if !ok {
				return nil, fmt.Errorf("%w: %q", risk.ErrUnknownRiskID, pair.RiskB)
			}
			sym.SetSym(i, j, pair.Coefficient)
		}
	}

	factor, projected, err := factorize(sym)
	if err != nil {
		return nil, err
	}
	cs.factor = factor
	cs.projected = projected
	return cs, nil
}

// Projected reports whether the nearest-PSD repair was applied.
func (cs *CorrelatedSampler) Projected() bool {
	return cs.projected
}

// RiskIDs returns the sampled risk ids in draw order.
func (cs *CorrelatedSampler) RiskIDs() []string {
	return append([]string(nil), cs.ids...)
}

// Draw fills dst with one jointly correlated impact value per risk, in the
// order the risks were supplied at construction.
func (cs *CorrelatedSampler) Draw(rng *rand.Rand, dst []float64) {
	k := len(cs.samplers)
	for i := 0; i < k; i++ {
		cs.latent[i] = rng.NormFloat64()
	}
	// y = L * z, walking the lower triangle in place from the bottom up so
	// the latent vector can be reused.
	for i := k - 1; i >= 0; i-- {
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += cs.factor.At(i, j) * cs.latent[j]
		}
		cs.latent[i] = sum
	}
	for i := 0; i < k; i++ {
		u := distuv.UnitNormal.CDF(cs.latent[i])
		dst[i] = cs.samplers[i].Quantile(u)
	}
}

// factorize returns the lower Cholesky factor of sym, applying the
// deterministic nearest-PSD projection when plain factorization fails.
func factorize(sym *mat.SymDense) (*mat.TriDense, bool, error) {
	k, _ := sym.Dims()

	var chol mat.Cholesky
	if chol.Factorize(sym) {
		lower := mat.NewTriDense(k, mat.Lower, nil)
		chol.LTo(lower)
		return lower, false, nil
	}

	repaired, err := nearestPSD(sym)
	if err != nil {
		return nil, false, err
	}
	if !chol.Factorize(repaired) {
		// Tiny diagonal ridge as a last deterministic resort.
		for i := 0; i < k; i++ {
			repaired.SetSym(i, i, repaired.At(i, i)+1e-8)
		}
		if !chol.Factorize(repaired) {
			return nil, false, risk.ErrNotPositiveDefinite
		}
	}
	lower := mat.NewTriDense(k, mat.Lower, nil)
	chol.LTo(lower)
	return lower, true, nil
}

// nearestPSD projects a symmetric matrix onto the positive semi-definite cone
// by clipping negative eigenvalues, then renormalizes the diagonal back to
// one so the result stays a correlation matrix.
func nearestPSD(sym *mat.SymDense) (*mat.SymDense, error) {
	k, _ := sym.Dims()

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, risk.ErrNotPositiveDefinite
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	for i := range vals {
		if vals[i] < eigenFloor {
			vals[i] = eigenFloor
		}
	}

	rebuilt := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sum := 0.0
			for m := 0; m < k; m++ {
				sum += vecs.At(i, m) * vals[m] * vecs.At(j, m)
			}
			rebuilt.SetSym(i, j, sum)
		}
	}

	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			norm := math.Sqrt(rebuilt.At(i, i) * rebuilt.At(j, j))
			if norm == 0 {
				return nil, risk.ErrNotPositiveDefinite
			}
			if i == j {
				out.SetSym(i, j, 1)
			} else {
				out.SetSym(i, j, rebuilt.At(i, j)/norm)
			}
		}
	}
	return out, nil
}
