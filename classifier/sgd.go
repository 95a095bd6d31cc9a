package classifier

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// sgdParams configures a softmax regression trained by stochastic
// gradient descent with an elastic-net penalty.
type sgdParams struct {
	Alpha   float64
	L1Ratio float64
	Eta0    float64
	Epochs  int
	Seed    uint64
}

// linear is a multinomial linear model over binary sparse inputs.
// Weights are feature-major: the scores of column j live in
// Weights[j*K : (j+1)*K].
type linear struct {
	K       int
	Weights []float64
	Bias    []float64
}

func (m *linear) row(j int) []float64 { return m.Weights[j*m.K : (j+1)*m.K] }

// probabilities writes the class probabilities of x into dst.
func (m *linear) probabilities(dst []float64, x []int) {
	for k := range dst {
		dst[k] = 0
	}
	for _, j := range x {
		floats.Add(dst, m.row(j))
	}
	floats.Add(dst, m.Bias)
	softmax(dst)
}

func softmax(s []float64) {
	if len(s) == 0 {
		return
	}
	floats.AddConst(-floats.Max(s), s)
	for i, v := range s {
		s[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(s), s)
}

// trainSGD fits a linear model on X (sparse binary rows) and labels y in
// [0, nClass). The L2 part of the penalty is applied through a global
// weight scale; the L1 part uses cumulative truncation (Tsuruoka et al.,
// 2009) so that sparse updates stay cheap.
func trainSGD(X [][]int, y []int, nFeat, nClass int, p sgdParams) *linear {
	m := &linear{
		K:       nClass,
		Weights: make([]float64, nFeat*nClass),
		Bias:    make([]float64, nClass),
	}
	if len(X) == 0 || nClass == 0 {
		return m
	}

	var (
		q      = make([]float64, len(m.Weights))
		wscale = 1.0
		u      = 0.0
		grad   = make([]float64, nClass)
		order  = make([]int, len(X))
		rng    = rand.New(rand.NewPCG(p.Seed, p.Seed))
		l1     = p.Alpha * p.L1Ratio
		l2     = p.Alpha * (1 - p.L1Ratio)
		t      = 0
	)
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < p.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			eta := p.Eta0 / (1 + p.Eta0*p.Alpha*float64(t))
			t++
			x := X[i]

			for k := range grad {
				grad[k] = 0
			}
			for _, j := range x {
				floats.Add(grad, m.row(j))
			}
			floats.Scale(wscale, grad)
			floats.Add(grad, m.Bias)
			softmax(grad)
			grad[y[i]] -= 1

			if l2 > 0 {
				wscale *= math.Max(1-eta*l2, 1e-9)
				if wscale < 1e-9 {
					floats.Scale(wscale, m.Weights)
					wscale = 1
				}
			}
			for _, j := range x {
				floats.AddScaled(m.row(j), -eta/wscale, grad)
			}
			floats.AddScaled(m.Bias, -eta, grad)

			if l1 > 0 {
				u += eta * l1
				for _, j := range x {
					for idx := j * nClass; idx < (j+1)*nClass; idx++ {
						truncate(m.Weights, q, idx, u, wscale)
					}
				}
			}
		}
	}
	floats.Scale(wscale, m.Weights)
	return m
}

// truncate applies the cumulative L1 penalty to one weight.
func truncate(w, q []float64, idx int, u, wscale float64) {
	z := w[idx]
	switch {
	case z > 0:
		w[idx] = math.Max(0, z-(u+q[idx])/wscale)
	case z < 0:
		w[idx] = math.Min(0, z+(u-q[idx])/wscale)
	}
	q[idx] += wscale * (w[idx] - z)
}

// selectColumns returns the columns whose weight magnitude summed over
// classes exceeds threshold. When nothing survives every column is kept.
func selectColumns(m *linear, nFeat int, threshold float64) []int {
	var keep []int
	for j := 0; j < nFeat; j++ {
		var s float64
		for _, w := range m.row(j) {
			s += math.Abs(w)
		}
		if s > threshold {
			keep = append(keep, j)
		}
	}
	if len(keep) == 0 {
		keep = make([]int, nFeat)
		for j := range keep {
			keep[j] = j
		}
	}
	return keep
}
