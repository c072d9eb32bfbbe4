package board

import "errors"

// Validation errors returned by the engine. All of them are reported before
// any mutation is committed, so a failed call never leaves the board in a
// partial state.
var (
	// ErrInvalidDimension is returned when a requested row or column count
	// is zero or negative.
	ErrInvalidDimension = errors.New("invalid dimension: rows and columns must be positive integers")

	// ErrDimensionTooLarge is returned when a requested row or column count
	// exceeds the board's configured maximum.
	ErrDimensionTooLarge = errors.New("dimension too large")

	// ErrShapeMismatch is returned by SetCells when the submitted grid does
	// not match the board's current dimensions.
	ErrShapeMismatch = errors.New("grid shape does not match board dimensions")

	// ErrInvalidCellValue is returned by SetCells when a submitted cell is
	// neither 0 nor 1.
	ErrInvalidCellValue = errors.New("invalid cell value: cells must be 0 or 1")

	// ErrZeroProbability is returned by Randomize when the live probability
	// clamps to zero. Sampling with p=0 can never produce a live cell, so
	// the retry-until-alive loop would spin forever.
	ErrZeroProbability = errors.New("live probability is zero: a random board would never contain a live cell")
)
