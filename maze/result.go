package maze

// Result is the value form of a ResultFunc invocation.
type Result struct {
	Path  []Cell
	Found bool
}

// Hops returns the number of moves along the path.
func (r Result) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// SolveResult solves m with s and returns the normalized result as a value.
func SolveResult(m *Maze, s Solver) (Result, error) {
	var res Result
	err := m.Solve(s, func(path []Cell, found bool) {
		res = Result{Path: path, Found: found}
	})
	return res, err
}
