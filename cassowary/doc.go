// Package cassowary implements an incremental solver for systems of linear
// equalities and inequalities, in the style of the Cassowary constraint
// solving algorithm.
//
// Constraints relate linear expressions over [Variable] values:
//
//	left := cassowary.NewVariable("left")
//	right := cassowary.NewVariable("right")
//
//	s := cassowary.NewSolver()
//	err := s.AddConstraint(cassowary.GE(
//		cassowary.Var(right), cassowary.Var(left).Plus(cassowary.Const(100)),
//		cassowary.Required,
//	))
//
// Each constraint carries a [Strength]. Required constraints must hold
// exactly; Strong, Medium, and Weak constraints are satisfied as well as
// possible, with stronger constraints winning over weaker ones. Edit
// variables ([Solver.AddEditVariable]) accept externally suggested values
// through [Solver.SuggestValue] and are re-solved incrementally, which makes
// repeated suggestions (window resizes, animated values) cheap.
//
// Ties between constraints of equal strength are broken by deterministic
// pivoting: the solver always pivots on the lowest-numbered candidate
// symbol, so identical inputs produce identical solutions.
//
// The solver is not safe for concurrent use.
package cassowary
