package cassowary

import "math"

// tag records the symbols introduced for a constraint so that removing the
// constraint can undo its effects.
type tag struct {
	marker symbol
	other  symbol
}

// editInfo tracks an edit variable's constraint and the last suggested value.
type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// Solver incrementally maintains a solution to a system of constraints.
// Constraints and edit variables can be added and removed at any time; the
// tableau is re-optimized after every mutation so variable values are always
// current.
type Solver struct {
	cns            map[*Constraint]tag
	rows           map[symbol]*row
	vars           map[*Variable]symbol
	edits          map[*Variable]*editInfo
	infeasibleRows []symbol
	objective      *row
	artificial     *row
	nextSymbolID   uint32
}

// NewSolver creates an empty solver.
func NewSolver() *Solver {
	return &Solver{
		cns:       make(map[*Constraint]tag),
		rows:      make(map[symbol]*row),
		vars:      make(map[*Variable]symbol),
		edits:     make(map[*Variable]*editInfo),
		objective: newRow(0),
	}
}

// AddConstraint adds a constraint to the solver. It fails with
// ErrDuplicateConstraint if the same constraint object was already added,
// and with ErrUnsatisfiable if the constraint is required and conflicts with
// the rest of the system.
func (s *Solver) AddConstraint(cn *Constraint) error {
	if _, ok := s.cns[cn]; ok {
		return ErrDuplicateConstraint
	}

	// Create a row from the constraint. The error and slack symbols it
	// introduces become the tag used to remove the constraint later.
	var t tag
	r := s.createRow(cn, &t)

	subject := s.chooseSubject(r, t)

	// If the row is all dummies its constant must be zero, otherwise the
	// required equality contradicts the existing system.
	if subject.kind == symbolInvalid && r.allDummies() {
		if !nearZero(r.constant) {
			return ErrUnsatisfiable
		}
		subject = t.marker
	}

	if subject.kind == symbolInvalid {
		if !s.addWithArtificialVariable(r) {
			return ErrUnsatisfiable
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	s.cns[cn] = t
	s.optimize(s.objective)
	return nil
}

// RemoveConstraint removes a previously added constraint. It fails with
// ErrUnknownConstraint if the constraint is not in the solver.
func (s *Solver) RemoveConstraint(cn *Constraint) error {
	t, ok := s.cns[cn]
	if !ok {
		return ErrUnknownConstraint
	}
	delete(s.cns, cn)

	// Remove the constraint's error effects from the objective before the
	// marker variable disappears from the tableau.
	s.removeConstraintEffects(cn, t)

	if _, ok := s.rows[t.marker]; ok {
		delete(s.rows, t.marker)
	} else {
		leaving, ok := s.getMarkerLeavingRow(t.marker)
		if !ok {
			panic("cassowary: internal solver error: failed to find leaving row")
		}
		r := s.rows[leaving]
		delete(s.rows, leaving)
		r.solveForPair(leaving, t.marker)
		s.substitute(t.marker, r)
	}

	s.optimize(s.objective)
	return nil
}

// HasConstraint reports whether the constraint is currently in the solver.
func (s *Solver) HasConstraint(cn *Constraint) bool {
	_, ok := s.cns[cn]
	return ok
}

// AddEditVariable registers v as an edit variable at the given strength,
// allowing its value to be suggested with SuggestValue. The strength must be
// below Required.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return ErrDuplicateEditVariable
	}
	strength = clipStrength(strength)
	if strength == Required {
		return ErrBadRequiredStrength
	}
	cn := NewConstraint(Var(v), OpEQ, strength)
	if err := s.AddConstraint(cn); err != nil {
		// A fresh non-required equality can always be satisfied.
		panic("cassowary: internal solver error: " + err.Error())
	}
	s.edits[v] = &editInfo{tag: s.cns[cn], constraint: cn}
	return nil
}

// RemoveEditVariable unregisters an edit variable.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	if err := s.RemoveConstraint(info.constraint); err != nil {
		panic("cassowary: internal solver error: " + err.Error())
	}
	delete(s.edits, v)
	return nil
}

// HasEditVariable reports whether v is registered as an edit variable.
func (s *Solver) HasEditVariable(v *Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// SuggestValue pushes a new value for an edit variable and incrementally
// re-solves. It fails with ErrUnknownEditVariable if v was never registered
// with AddEditVariable.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return ErrUnknownEditVariable
	}
	delta := value - info.constant
	info.constant = value
	defer s.dualOptimize()

	// Check first if the positive error variable is basic.
	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.tag.marker)
		}
		return nil
	}
	// Check next if the negative error variable is basic.
	if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.tag.other)
		}
		return nil
	}
	// Otherwise update each row where the error variable appears.
	for basic, r := range s.rows {
		coeff := r.coefficientFor(info.tag.marker)
		if coeff != 0 && r.add(delta*coeff) < 0 && basic.kind != symbolExternal {
			s.infeasibleRows = append(s.infeasibleRows, basic)
		}
	}
	return nil
}

// Value returns the current solved value of v. Variables absent from the
// solver, and parametric variables, have value 0.
func (s *Solver) Value(v *Variable) float64 {
	sym, ok := s.vars[v]
	if !ok {
		return 0
	}
	if r, ok := s.rows[sym]; ok {
		return r.constant
	}
	return 0
}

// --- Tableau construction ---

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextSymbolID++
	return symbol{id: s.nextSymbolID, kind: kind}
}

// getVarSymbol returns the external symbol for v, creating it on first use.
func (s *Solver) getVarSymbol(v *Variable) symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.newSymbol(symbolExternal)
	s.vars[v] = sym
	return sym
}

// createRow converts a constraint into a tableau row, substituting any
// variables that are already basic and introducing slack/error/dummy symbols
// according to the relation and strength.
func (s *Solver) createRow(cn *Constraint, t *tag) *row {
	r := newRow(cn.expr.Constant)
	for _, term := range cn.expr.Terms {
		if nearZero(term.Coeff) {
			continue
		}
		sym := s.getVarSymbol(term.Var)
		if existing, ok := s.rows[sym]; ok {
			r.insertRow(existing, term.Coeff)
		} else {
			r.insertSymbol(sym, term.Coeff)
		}
	}

	switch cn.op {
	case OpLE, OpGE:
		coeff := 1.0
		if cn.op == OpGE {
			coeff = -1.0
		}
		slack := s.newSymbol(symbolSlack)
		t.marker = slack
		r.insertSymbol(slack, coeff)
		if cn.strength < Required {
			errSym := s.newSymbol(symbolError)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, float64(cn.strength))
		}
	case OpEQ:
		if cn.strength < Required {
			errPlus := s.newSymbol(symbolError)
			errMinus := s.newSymbol(symbolError)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1) // v = ePlus - eMinus
			r.insertSymbol(errMinus, 1)
			s.objective.insertSymbol(errPlus, float64(cn.strength))
			s.objective.insertSymbol(errMinus, float64(cn.strength))
		} else {
			dummy := s.newSymbol(symbolDummy)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	// The solver's internal representation requires non-negative constants.
	if r.constant < 0 {
		r.reverseSign()
	}
	return r
}

// chooseSubject picks the symbol the new row will be basic in: the
// lowest-numbered external symbol if one exists, otherwise a negative
// slack/error symbol from the constraint's own tag.
func (s *Solver) chooseSubject(r *row, t tag) symbol {
	var best symbol
	for sym := range r.cells {
		if sym.kind == symbolExternal && (best.kind == symbolInvalid || sym.id < best.id) {
			best = sym
		}
	}
	if best.kind != symbolInvalid {
		return best
	}
	if (t.marker.kind == symbolSlack || t.marker.kind == symbolError) && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if (t.other.kind == symbolSlack || t.other.kind == symbolError) && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

// addWithArtificialVariable adds the row using an artificial variable and a
// throwaway optimization pass. Reports whether the row was satisfiable.
func (s *Solver) addWithArtificialVariable(r *row) bool {
	art := s.newSymbol(symbolSlack)
	s.rows[art] = r.copy()
	s.artificial = r.copy()

	// Optimize the artificial objective: zero means the real row is
	// reachable from the current basis.
	s.optimize(s.artificial)
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	// If the artificial variable ended up basic, pivot it out.
	if artRow, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(artRow.cells) == 0 {
			return success
		}
		entering := s.anyPivotableSymbol(artRow)
		if entering.kind == symbolInvalid {
			return false
		}
		artRow.solveForPair(art, entering)
		s.substitute(entering, artRow)
		s.rows[entering] = artRow
	}

	// Scrub any remaining traces of the artificial variable.
	for _, r2 := range s.rows {
		r2.removeSymbol(art)
	}
	s.objective.removeSymbol(art)
	return success
}

// substitute replaces sym with the given row throughout the tableau,
// collecting rows made infeasible by the substitution.
func (s *Solver) substitute(sym symbol, r *row) {
	for basic, candidate := range s.rows {
		candidate.substitute(sym, r)
		if basic.kind != symbolExternal && candidate.constant < 0 {
			s.infeasibleRows = append(s.infeasibleRows, basic)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// --- Optimization ---

// optimize performs the simplex method on the given objective until no
// entering symbol remains.
func (s *Solver) optimize(objective *row) {
	for {
		entering := s.getEnteringSymbol(objective)
		if entering.kind == symbolInvalid {
			return
		}
		leaving, ok := s.getLeavingRow(entering)
		if !ok {
			panic("cassowary: internal solver error: objective is unbounded")
		}
		r := s.rows[leaving]
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
}

// dualOptimize restores feasibility after suggested-value changes using the
// dual simplex method on the rows queued in infeasibleRows.
func (s *Solver) dualOptimize() {
	for len(s.infeasibleRows) > 0 {
		// Pop the lowest-numbered infeasible symbol for deterministic
		// pivoting.
		mi := 0
		for i := 1; i < len(s.infeasibleRows); i++ {
			if s.infeasibleRows[i].id < s.infeasibleRows[mi].id {
				mi = i
			}
		}
		leaving := s.infeasibleRows[mi]
		s.infeasibleRows = append(s.infeasibleRows[:mi], s.infeasibleRows[mi+1:]...)

		r, ok := s.rows[leaving]
		if !ok || r.constant >= 0 {
			continue
		}
		entering := s.getDualEnteringSymbol(r)
		if entering.kind == symbolInvalid {
			panic("cassowary: internal solver error: dual optimize failed")
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
}

// getEnteringSymbol returns the lowest-numbered non-dummy symbol with a
// negative objective coefficient, or the invalid symbol when optimal.
func (s *Solver) getEnteringSymbol(objective *row) symbol {
	var best symbol
	for sym, c := range objective.cells {
		if sym.kind == symbolDummy || c >= 0 {
			continue
		}
		if best.kind == symbolInvalid || sym.id < best.id {
			best = sym
		}
	}
	return best
}

// getDualEnteringSymbol returns the dual-simplex entering symbol for an
// infeasible row: the non-dummy symbol with positive coefficient minimizing
// the objective-coefficient ratio, lowest-numbered on ties.
func (s *Solver) getDualEnteringSymbol(r *row) symbol {
	var best symbol
	ratio := math.MaxFloat64
	for sym, c := range r.cells {
		if sym.kind == symbolDummy || c <= 0 {
			continue
		}
		rt := s.objective.coefficientFor(sym) / c
		if best.kind == symbolInvalid || rt < ratio || (rt == ratio && sym.id < best.id) {
			ratio = rt
			best = sym
		}
	}
	return best
}

// anyPivotableSymbol returns the lowest-numbered slack or error symbol in
// the row, or the invalid symbol.
func (s *Solver) anyPivotableSymbol(r *row) symbol {
	var best symbol
	for sym := range r.cells {
		if sym.kind != symbolSlack && sym.kind != symbolError {
			continue
		}
		if best.kind == symbolInvalid || sym.id < best.id {
			best = sym
		}
	}
	return best
}

// getLeavingRow finds the row that bounds the entering symbol most tightly,
// using the minimum-ratio test with lowest-numbered tie-breaking.
func (s *Solver) getLeavingRow(entering symbol) (symbol, bool) {
	var found symbol
	ratio := math.MaxFloat64
	for sym, r := range s.rows {
		if sym.kind == symbolExternal {
			continue
		}
		c := r.coefficientFor(entering)
		if c >= 0 {
			continue
		}
		rt := -r.constant / c
		if found.kind == symbolInvalid || rt < ratio || (rt == ratio && sym.id < found.id) {
			ratio = rt
			found = sym
		}
	}
	return found, found.kind != symbolInvalid
}

// getMarkerLeavingRow picks the row to pivot a removed constraint's marker
// into, preferring restricted rows with negative marker coefficients, then
// restricted rows with positive ones, then external rows.
func (s *Solver) getMarkerLeavingRow(marker symbol) (symbol, bool) {
	r1 := math.MaxFloat64
	r2 := math.MaxFloat64
	var first, second, third symbol
	for sym, candidate := range s.rows {
		c := candidate.coefficientFor(marker)
		if c == 0 {
			continue
		}
		switch {
		case sym.kind == symbolExternal:
			if third.kind == symbolInvalid || sym.id < third.id {
				third = sym
			}
		case c < 0:
			rt := -candidate.constant / c
			if first.kind == symbolInvalid || rt < r1 || (rt == r1 && sym.id < first.id) {
				r1 = rt
				first = sym
			}
		default:
			rt := candidate.constant / c
			if second.kind == symbolInvalid || rt < r2 || (rt == r2 && sym.id < second.id) {
				r2 = rt
				second = sym
			}
		}
	}
	switch {
	case first.kind != symbolInvalid:
		return first, true
	case second.kind != symbolInvalid:
		return second, true
	case third.kind != symbolInvalid:
		return third, true
	}
	return symbol{}, false
}

// removeConstraintEffects subtracts a removed constraint's error terms from
// the objective.
func (s *Solver) removeConstraintEffects(cn *Constraint, t tag) {
	if t.marker.kind == symbolError {
		s.removeMarkerEffects(t.marker, cn.strength)
	}
	if t.other.kind == symbolError {
		s.removeMarkerEffects(t.other, cn.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}
