// Package smoothing provides quintic lateral-offset polynomials and the closed form quadratic smoothness
// kernels over their coefficients.
package smoothing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// QuinticPolynomial is a lateral offset profile l(s) = sum p_i (s - SStart)^i, i in [0, 5].
type QuinticPolynomial struct {
	Coeffs [6]float64 `json:"coeffs"`
	SStart float64    `json:"s_start"`
	SEnd   float64    `json:"s_end"`
}

// NewQuinticPolynomial returns the polynomial with coefficients p0..p5 valid over [sStart, sEnd].
func NewQuinticPolynomial(coeffs [6]float64, sStart, sEnd float64) *QuinticPolynomial {
	return &QuinticPolynomial{Coeffs: coeffs, SStart: sStart, SEnd: sEnd}
}

// Value returns l(s). Stations outside [SStart, SEnd] are evaluated without clamping.
func (q *QuinticPolynomial) Value(s float64) float64 {
	ds := s - q.SStart
	p := q.Coeffs
	return p[0] + ds*(p[1]+ds*(p[2]+ds*(p[3]+ds*(p[4]+ds*p[5]))))
}

// FirstDerivative returns dl/ds.
func (q *QuinticPolynomial) FirstDerivative(s float64) float64 {
	ds := s - q.SStart
	p := q.Coeffs
	return p[1] + ds*(2*p[2]+ds*(3*p[3]+ds*(4*p[4]+ds*5*p[5])))
}

// SecondDerivative returns d2l/ds2.
func (q *QuinticPolynomial) SecondDerivative(s float64) float64 {
	ds := s - q.SStart
	p := q.Coeffs
	return 2*p[2] + ds*(6*p[3]+ds*(12*p[4]+ds*20*p[5]))
}

// ThirdDerivative returns d3l/ds3, the lateral jerk with respect to station.
func (q *QuinticPolynomial) ThirdDerivative(s float64) float64 {
	ds := s - q.SStart
	p := q.Coeffs
	return 6*p[3] + ds*(24*p[4]+ds*60*p[5])
}

// Length returns the station span SEnd - SStart.
func (q *QuinticPolynomial) Length() float64 {
	return q.SEnd - q.SStart
}

// Sample returns n evenly spaced (s, l) pairs over [SStart, SEnd].
func (q *QuinticPolynomial) Sample(n int) (stations, offsets []float64) {
	if n <= 0 {
		return nil, nil
	}
	stations = make([]float64, n)
	if n == 1 {
		stations[0] = q.SStart
	} else {
		floats.Span(stations, q.SStart, q.SEnd)
	}
	offsets = make([]float64, n)
	for i, s := range stations {
		offsets[i] = q.Value(s)
	}
	return stations, offsets
}

func (q *QuinticPolynomial) String() string {
	return fmt.Sprintf("Quintic{s:[%.3f, %.3f] p:%v}", q.SStart, q.SEnd, q.Coeffs)
}
