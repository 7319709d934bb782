package lineup

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTol  = 1e-10
	integralTol = 1e-6
)

// SimplexSolver solves the assignment as a linear program.
//
// Every variable appears in exactly one slot row and one player row, so the
// constraint matrix is totally unimodular and the optimal vertex the simplex
// method returns is already integral. Each player row carries a slack column
// turning "starts at most once" into an equality.
type SimplexSolver struct{}

// NewSimplexSolver returns the default exact solver.
func NewSimplexSolver() SimplexSolver {
	return SimplexSolver{}
}

// Solve implements Solver.
func (SimplexSolver) Solve(p *Problem) (sel []Key, err error) {
	defer func() {
		if r := recover(); r != nil {
			sel = nil
			err = fmt.Errorf("%w: %v", ErrSolverPanic, r)
		}
	}()

	if err := p.precheck(); err != nil {
		return nil, err
	}

	nx, np, ns := len(p.Vars), len(p.Players), len(p.Slots)
	rows, cols := ns+np, nx+np

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	slotRow := make(map[string]int, ns)
	for j, s := range p.Slots {
		slotRow[s.Name] = j
		b[j] = float64(s.Count)
	}
	playerRow := make(map[string]int, np)
	for i, pid := range p.Players {
		r := ns + i
		playerRow[pid] = r
		b[r] = 1
		a.Set(r, nx+i, 1)
	}
	for col, k := range p.Vars {
		a.Set(slotRow[k.Slot], col, 1)
		a.Set(playerRow[k.PlayerID], col, 1)
		// lp minimizes
		c[col] = -p.Coef[k]
	}

	_, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverFailed, err)
	}

	for col, k := range p.Vars {
		v := x[col]
		if v > integralTol && v < 1-integralTol {
			return nil, fmt.Errorf("%w: %s/%s=%g", ErrNonIntegral, k.PlayerID, k.Slot, v)
		}
		if v > 0.5 {
			sel = append(sel, k)
		}
	}
	return sel, nil
}
