package cassowary

import "errors"

var (
	// ErrUnsatisfiable is returned when a required constraint cannot be
	// satisfied together with the constraints already in the solver.
	ErrUnsatisfiable = errors.New("cassowary: constraint is unsatisfiable")

	// ErrDuplicateConstraint is returned when a constraint is added twice.
	ErrDuplicateConstraint = errors.New("cassowary: constraint already added")

	// ErrUnknownConstraint is returned when removing a constraint that was
	// never added.
	ErrUnknownConstraint = errors.New("cassowary: constraint is not in the solver")

	// ErrDuplicateEditVariable is returned when a variable is registered as
	// editable twice.
	ErrDuplicateEditVariable = errors.New("cassowary: edit variable already added")

	// ErrUnknownEditVariable is returned when suggesting a value for, or
	// removing, a variable that was never registered as editable.
	ErrUnknownEditVariable = errors.New("cassowary: variable is not an edit variable")

	// ErrBadRequiredStrength is returned when an edit variable is registered
	// with the Required strength. Edit values are suggestions and must stay
	// overridable by required constraints.
	ErrBadRequiredStrength = errors.New("cassowary: edit variable must not be required")
)
