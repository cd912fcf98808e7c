package entities

import "errors"

// Fatal input errors. A solve run that hits either of these aborts
// before producing any output; consumers never see a partial plan.
var (
	// ErrInvalidInput indicates malformed or missing master data
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidBOM indicates a structural defect in the BOM graph,
	// such as a cycle
	ErrInvalidBOM = errors.New("invalid BOM")
)
