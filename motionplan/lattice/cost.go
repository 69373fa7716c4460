package lattice

import (
	"encoding/json"
	"fmt"
	"math"
)

// Cost is the weight of a lattice edge or path: either a finite non-negative value or infeasible.
// The zero value is infeasible.
type Cost struct {
	value    float64
	feasible bool
}

// Feasible returns a finite cost. Negative, NaN or infinite values are not costs and yield Infeasible().
func Feasible(v float64) Cost {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Infeasible()
	}
	return Cost{value: v, feasible: true}
}

// Infeasible returns the cost of an edge that cannot be traversed.
func Infeasible() Cost {
	return Cost{}
}

// IsFeasible reports whether the cost is finite.
func (c Cost) IsFeasible() bool {
	return c.feasible
}

// Value returns the finite cost and true, or 0 and false when infeasible.
func (c Cost) Value() (float64, bool) {
	return c.value, c.feasible
}

// Weight returns the cost as a float, +Inf when infeasible. Only for handing edges to graph libraries.
func (c Cost) Weight() float64 {
	if !c.feasible {
		return math.Inf(1)
	}
	return c.value
}

// Add returns the sum of two costs; infeasibility is absorbing.
func (c Cost) Add(o Cost) Cost {
	if !c.feasible || !o.feasible {
		return Infeasible()
	}
	return Feasible(c.value + o.value)
}

// Less orders feasible costs by value, ahead of any infeasible cost.
func (c Cost) Less(o Cost) bool {
	switch {
	case !c.feasible:
		return false
	case !o.feasible:
		return true
	default:
		return c.value < o.value
	}
}

func (c Cost) String() string {
	if !c.feasible {
		return "infeasible"
	}
	return fmt.Sprintf("%.6g", c.value)
}

// MarshalJSON encodes infeasible costs as null.
func (c Cost) MarshalJSON() ([]byte, error) {
	if !c.feasible {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}
