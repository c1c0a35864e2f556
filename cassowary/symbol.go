package cassowary

import "math"

// symbolKind classifies the columns of the simplex tableau.
type symbolKind uint8

const (
	symbolInvalid  symbolKind = iota // zero value, "no symbol"
	symbolExternal                   // a user-visible Variable
	symbolSlack                      // converts an inequality into an equality
	symbolError                      // measures violation of a non-required constraint
	symbolDummy                      // marker for required equalities, never pivoted
)

// symbol is one tableau column. Symbol ids increase monotonically, which the
// pivot-selection routines rely on for deterministic tie-breaking.
type symbol struct {
	id   uint32
	kind symbolKind
}

// nearZero reports whether v is within solver tolerance of zero.
func nearZero(v float64) bool {
	const eps = 1.0e-8
	return math.Abs(v) < eps
}

// row is one tableau row: a constant plus a linear combination of symbols.
// A basic symbol's row expresses that symbol in terms of parametric symbols.
type row struct {
	constant float64
	cells    map[symbol]float64
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: make(map[symbol]float64)}
}

func (r *row) copy() *row {
	cells := make(map[symbol]float64, len(r.cells))
	for s, c := range r.cells {
		cells[s] = c
	}
	return &row{constant: r.constant, cells: cells}
}

// add shifts the row's constant by value and returns the new constant.
func (r *row) add(value float64) float64 {
	r.constant += value
	return r.constant
}

// insertSymbol adds coeff * sym to the row, removing the cell if the
// aggregate coefficient vanishes.
func (r *row) insertSymbol(sym symbol, coeff float64) {
	c := r.cells[sym] + coeff
	if nearZero(c) {
		delete(r.cells, sym)
	} else {
		r.cells[sym] = c
	}
}

// insertRow adds coeff * other to this row.
func (r *row) insertRow(other *row, coeff float64) {
	r.constant += other.constant * coeff
	for s, c := range other.cells {
		r.insertSymbol(s, c*coeff)
	}
}

func (r *row) removeSymbol(sym symbol) {
	delete(r.cells, sym)
}

// reverseSign negates the entire row.
func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, c := range r.cells {
		r.cells[s] = -c
	}
}

// solveFor rewrites the row so that sym would equal the remaining expression:
// given a*sym + rest = 0, produce sym = -rest/a. sym must have a non-zero
// coefficient in the row.
func (r *row) solveFor(sym symbol) {
	coeff := -1.0 / r.cells[sym]
	delete(r.cells, sym)
	r.constant *= coeff
	for s, c := range r.cells {
		r.cells[s] = c * coeff
	}
}

// solveForPair rewrites the row, currently basic in lhs, to be basic in rhs.
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

// coefficientFor returns the coefficient of sym, or 0 when absent.
func (r *row) coefficientFor(sym symbol) float64 {
	return r.cells[sym]
}

// substitute replaces every occurrence of sym with the given row.
func (r *row) substitute(sym symbol, other *row) {
	if c, ok := r.cells[sym]; ok {
		delete(r.cells, sym)
		r.insertRow(other, c)
	}
}

// allDummies reports whether every cell in the row is a dummy symbol.
func (r *row) allDummies() bool {
	for s := range r.cells {
		if s.kind != symbolDummy {
			return false
		}
	}
	return true
}
