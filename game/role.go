package game

// Role tells whose values the search prefers at a node.
type Role int

const (
	Max Role = iota
	Min
)

func (r Role) Opposite() Role {
	if r == Max {
		return Min
	}
	return Max
}

// Prefers reports whether a is strictly better than b for r.
func (r Role) Prefers(a, b float64) bool {
	if r == Max {
		return a > b
	}
	return a < b
}

func (r Role) String() string {
	if r == Max {
		return "max"
	}
	return "min"
}
