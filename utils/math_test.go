package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestWrapToPi(t *testing.T) {
	test.That(t, WrapToPi(0), test.ShouldEqual, 0.)
	test.That(t, WrapToPi(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapToPi(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapToPi(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, WrapToPi(-3*math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, WrapToPi(4*math.Pi+0.25), test.ShouldAlmostEqual, 0.25)
	for _, theta := range []float64{-10, -3.2, -1, 0.5, 3.1, 7, 100} {
		w := WrapToPi(theta)
		test.That(t, w, test.ShouldBeGreaterThan, -math.Pi)
		test.That(t, w, test.ShouldBeLessThanOrEqualTo, math.Pi)
		test.That(t, math.Sin(w), test.ShouldAlmostEqual, math.Sin(theta))
		test.That(t, math.Cos(w), test.ShouldAlmostEqual, math.Cos(theta))
	}
}

func TestFactorials(t *testing.T) {
	test.That(t, Factorial(0), test.ShouldEqual, 1.)
	test.That(t, Factorial(5), test.ShouldEqual, 120.)
	test.That(t, FallingFactorial(5, 3), test.ShouldEqual, 60.)
	test.That(t, FallingFactorial(3, 3), test.ShouldEqual, 6.)
	test.That(t, FallingFactorial(2, 3), test.ShouldEqual, 0.)
	test.That(t, FallingFactorial(4, 0), test.ShouldEqual, 1.)
}

func TestGetenvInt(t *testing.T) {
	t.Setenv(NumThreadsEnvVar, "")
	test.That(t, GetenvInt(NumThreadsEnvVar, 3), test.ShouldEqual, 3)
	t.Setenv(NumThreadsEnvVar, "7")
	test.That(t, GetenvInt(NumThreadsEnvVar, 3), test.ShouldEqual, 7)
	t.Setenv(NumThreadsEnvVar, "seven")
	test.That(t, GetenvInt(NumThreadsEnvVar, 3), test.ShouldEqual, 3)
}
