// homography.go - Projective transforms between four point pairs.
package perspective

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform in row-major order with the last
// element fixed at 1.
type Homography [9]float64

// ErrSingular is returned when the corner correspondences do not determine a
// projective transform.
var ErrSingular = errors.New("perspective: corners do not define a projective transform")

// Solve returns the homography mapping from[i] onto to[i] for all four
// correspondences.
func Solve(from, to [4][2]float64) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := from[i][0], from[i][1]
		u, v := to[i][0], to[i][1]

		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		b.SetVec(2*i, u)
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		b.SetVec(2*i+1, v)
	}

	// An ill-conditioned system still yields a usable solution; the NaN
	// check below catches the ones that are not.
	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) || h.Len() != 8 {
			return Homography{}, ErrSingular
		}
	}

	var H Homography
	for i := 0; i < 8; i++ {
		H[i] = h.AtVec(i)
		if math.IsNaN(H[i]) || math.IsInf(H[i], 0) {
			return Homography{}, ErrSingular
		}
	}
	H[8] = 1
	return H, nil
}

// Apply maps (x, y) through the transform. ok is false for points that map
// to infinity.
func (h Homography) Apply(x, y float64) (u, v float64, ok bool) {
	w := h[6]*x + h[7]*y + h[8]
	if math.Abs(w) < 1e-12 {
		return 0, 0, false
	}
	u = (h[0]*x + h[1]*y + h[2]) / w
	v = (h[3]*x + h[4]*y + h[5]) / w
	return u, v, true
}
