package cassowary

import (
	"fmt"
	"strconv"
	"strings"
)

// variableIDCounter is a plain counter (no atomic — the solver and everything
// above it are single-threaded).
var variableIDCounter uint32

// Variable is a value determined by the solver. Variables are compared by
// identity: two variables with the same name are still distinct.
type Variable struct {
	id   uint32
	name string
}

// NewVariable creates a new solver variable. The name is used only for
// diagnostics and may be empty.
func NewVariable(name string) *Variable {
	variableIDCounter++
	return &Variable{id: variableIDCounter, name: name}
}

// Name returns the diagnostic name given at creation.
func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return "v" + strconv.FormatUint(uint64(v.id), 10)
}

// Term is a variable scaled by a coefficient.
type Term struct {
	Var   *Variable
	Coeff float64
}

// Expr is a linear expression: a sum of terms plus a constant.
type Expr struct {
	Terms    []Term
	Constant float64
}

// NewExpr builds an expression from a constant and terms.
func NewExpr(constant float64, terms ...Term) Expr {
	return Expr{Terms: terms, Constant: constant}
}

// Var returns the expression consisting of v with coefficient 1.
func Var(v *Variable) Expr {
	return Expr{Terms: []Term{{Var: v, Coeff: 1}}}
}

// Const returns the constant expression c.
func Const(c float64) Expr {
	return Expr{Constant: c}
}

// Plus returns e + o. Neither operand is modified.
func (e Expr) Plus(o Expr) Expr {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Expr{Terms: terms, Constant: e.Constant + o.Constant}
}

// Minus returns e - o. Neither operand is modified.
func (e Expr) Minus(o Expr) Expr {
	return e.Plus(o.Times(-1))
}

// Times returns e scaled by k. e is not modified.
func (e Expr) Times(k float64) Expr {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Var: t.Var, Coeff: t.Coeff * k}
	}
	return Expr{Terms: terms, Constant: e.Constant * k}
}

func (e Expr) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t.Coeff == 1 {
			b.WriteString(t.Var.String())
		} else {
			fmt.Fprintf(&b, "%g*%s", t.Coeff, t.Var)
		}
	}
	if e.Constant != 0 || len(e.Terms) == 0 {
		if len(e.Terms) > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g", e.Constant)
	}
	return b.String()
}
