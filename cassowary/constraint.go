package cassowary

import "fmt"

// Op is the relation of a constraint's expression to zero.
type Op int8

const (
	OpLE Op = iota // expression <= 0
	OpEQ           // expression == 0
	OpGE           // expression >= 0
)

func (o Op) String() string {
	switch o {
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	case OpGE:
		return ">="
	}
	return "?"
}

// Constraint relates a linear expression to zero with a strength.
// Constraints are compared by identity: the same *Constraint cannot be added
// to a solver twice, but two equal-looking constraints are independent.
type Constraint struct {
	expr     Expr
	op       Op
	strength Strength
}

// NewConstraint creates a constraint asserting `e op 0` at the given
// strength. The strength is clipped to the valid range.
func NewConstraint(e Expr, op Op, strength Strength) *Constraint {
	return &Constraint{expr: e, op: op, strength: clipStrength(strength)}
}

// EQ returns the constraint a == b at the given strength.
func EQ(a, b Expr, strength Strength) *Constraint {
	return NewConstraint(a.Minus(b), OpEQ, strength)
}

// LE returns the constraint a <= b at the given strength.
func LE(a, b Expr, strength Strength) *Constraint {
	return NewConstraint(a.Minus(b), OpLE, strength)
}

// GE returns the constraint a >= b at the given strength.
func GE(a, b Expr, strength Strength) *Constraint {
	return NewConstraint(a.Minus(b), OpGE, strength)
}

// Expr returns the constraint's left-hand expression (related to zero).
func (c *Constraint) Expr() Expr {
	return c.expr
}

// Op returns the constraint's relation.
func (c *Constraint) Op() Op {
	return c.op
}

// Strength returns the constraint's strength.
func (c *Constraint) Strength() Strength {
	return c.strength
}

func (c *Constraint) String() string {
	name := "weak"
	switch {
	case c.strength >= Required:
		name = "required"
	case c.strength >= Strong:
		name = "strong"
	case c.strength >= Medium:
		name = "medium"
	}
	return fmt.Sprintf("%s %s 0 | %s", c.expr, c.op, name)
}
