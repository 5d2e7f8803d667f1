package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT prepares the exploration term for a parent visited N times.
func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: 2 * c * c * math.Log(float64(N))}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
