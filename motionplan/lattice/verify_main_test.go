package lattice

import (
	"testing"

	"go.viam.com/latticeplan/testutils"
)

// TestMain fails the package if edge scoring leaks goroutines.
func TestMain(m *testing.M) {
	testutils.VerifyTestMain(m)
}
