package board

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Cell is a single grid position. The two valid states are Dead (0) and
// Alive (1); the numeric representation is also the wire format.
type Cell int

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Grid is a rows×columns field of cells, outer slice indexed by row.
type Grid [][]Cell

// DefaultMaxRows and DefaultMaxColumns cap resize requests when the board
// config leaves the maxima unset.
const (
	DefaultMaxRows    = 50
	DefaultMaxColumns = 50
)

// Config carries the initial shape of a board. Zero maxima fall back to the
// package defaults.
type Config struct {
	Rows            int
	Columns         int
	MaxRows         int
	MaxColumns      int
	LiveProbability float64
}

// Board is the process-wide authoritative grid. A single mutex guards the
// whole struct as one unit: dimensions, cells, the previous-generation
// snapshot, and the live probability. Every public method holds the lock for
// its full duration, so concurrent callers always observe a fully-old or
// fully-new board, never a mixture.
type Board struct {
	mu sync.Mutex

	rows    int
	columns int
	maxRows int
	maxCols int

	cells    Grid
	previous Grid // grid as it was before the last Advance; nil until then

	liveProbability float64
}

// Snapshot is a read-only copy of the board state. Its grid never aliases
// the board's internal storage.
type Snapshot struct {
	Rows            int
	Columns         int
	Cells           Grid
	LiveProbability float64
}

// New constructs a board of the configured dimensions with every cell Dead.
// It applies the same dimension validation as Resize.
func New(cfg Config) (*Board, error) {
	maxRows := cfg.MaxRows
	if maxRows == 0 {
		maxRows = DefaultMaxRows
	}
	maxCols := cfg.MaxColumns
	if maxCols == 0 {
		maxCols = DefaultMaxColumns
	}

	if err := validateDimensions(cfg.Rows, cfg.Columns, maxRows, maxCols); err != nil {
		return nil, err
	}

	return &Board{
		rows:            cfg.Rows,
		columns:         cfg.Columns,
		maxRows:         maxRows,
		maxCols:         maxCols,
		cells:           newGrid(cfg.Rows, cfg.Columns),
		liveProbability: clamp01(cfg.LiveProbability),
	}, nil
}

// Reset sets every cell to Dead and discards the previous-generation
// snapshot.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = newGrid(b.rows, b.columns)
	b.previous = nil
}

// Fill sets every cell to Alive. Symmetric to Reset, including the discard
// of the previous-generation snapshot.
func (b *Board) Fill() {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := newGrid(b.rows, b.columns)
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = Alive
		}
	}
	b.cells = grid
	b.previous = nil
}

// Randomize stores the clamped live probability and replaces the grid with
// an independent Bernoulli sample of it, resampling until at least one cell
// comes up Alive. With p=0 that loop could never terminate, so the call
// fails fast with ErrZeroProbability and leaves the board untouched.
func (b *Board) Randomize(p float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p = clamp01(p)
	if p == 0 {
		return ErrZeroProbability
	}
	b.liveProbability = p

	for {
		grid := newGrid(b.rows, b.columns)
		alive := false
		for r := range grid {
			for c := range grid[r] {
				if rand.Float64() < p {
					grid[r][c] = Alive
					alive = true
				}
			}
		}
		if alive {
			b.cells = grid
			return nil
		}
	}
}

// Advance computes one generation of the update rule and reports whether the
// board has gone static (the new grid is cell-for-cell identical to the grid
// it was computed from). The next generation is built into a fresh buffer so
// every neighbor count reads the pre-update grid.
func (b *Board) Advance() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := newGrid(b.rows, b.columns)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			next[r][c] = nextState(b.cells[r][c], b.liveNeighbors(r, c))
		}
	}

	b.previous = b.cells
	b.cells = next
	return gridsEqual(b.previous, b.cells)
}

// Resize reallocates the grid to the requested dimensions with every cell
// Dead and discards the previous-generation snapshot. The board is untouched
// when validation fails.
func (b *Board) Resize(rows, columns int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := validateDimensions(rows, columns, b.maxRows, b.maxCols); err != nil {
		return err
	}

	b.rows = rows
	b.columns = columns
	b.cells = newGrid(rows, columns)
	b.previous = nil
	return nil
}

// SetCells replaces the whole grid with a copy of the submitted one. The
// submission must match the board's current shape and contain only 0/1
// cells. The previous-generation snapshot is deliberately left alone, so the
// next Advance compares against the pre-customize grid.
func (b *Board) SetCells(grid Grid) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(grid) != b.rows {
		return fmt.Errorf("%w: want %dx%d", ErrShapeMismatch, b.rows, b.columns)
	}
	for _, row := range grid {
		if len(row) != b.columns {
			return fmt.Errorf("%w: want %dx%d", ErrShapeMismatch, b.rows, b.columns)
		}
		for _, cell := range row {
			if cell != Dead && cell != Alive {
				return ErrInvalidCellValue
			}
		}
	}

	b.cells = copyGrid(grid)
	return nil
}

// SetLiveProbability clamps p to [0,1] and stores it without touching the
// grid.
func (b *Board) SetLiveProbability(p float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.liveProbability = clamp01(p)
}

// Snapshot returns a deep copy of the observable board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Rows:            b.rows,
		Columns:         b.columns,
		Cells:           copyGrid(b.cells),
		LiveProbability: b.liveProbability,
	}
}

// liveNeighbors counts the Alive cells in the 3×3 block around (row, col),
// skipping the center and anything outside the grid. Callers hold the lock.
func (b *Board) liveNeighbors(row, col int) int {
	count := 0
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if r == row && c == col {
				continue
			}
			if r < 0 || r >= b.rows || c < 0 || c >= b.columns {
				continue
			}
			if b.cells[r][c] == Alive {
				count++
			}
		}
	}
	return count
}

// nextState applies the Conway rule to a single cell: a live cell survives
// with 2 or 3 live neighbors, a dead cell spawns with exactly 3.
func nextState(current Cell, liveNeighbors int) Cell {
	if current == Alive && (liveNeighbors == 2 || liveNeighbors == 3) {
		return Alive
	}
	if current == Dead && liveNeighbors == 3 {
		return Alive
	}
	return Dead
}

func validateDimensions(rows, columns, maxRows, maxCols int) error {
	if rows <= 0 || columns <= 0 {
		return ErrInvalidDimension
	}
	if rows > maxRows || columns > maxCols {
		return fmt.Errorf("%w: maximum is %dx%d", ErrDimensionTooLarge, maxRows, maxCols)
	}
	return nil
}

func newGrid(rows, columns int) Grid {
	grid := make(Grid, rows)
	for r := range grid {
		grid[r] = make([]Cell, columns)
	}
	return grid
}

func copyGrid(grid Grid) Grid {
	out := make(Grid, len(grid))
	for r, row := range grid {
		out[r] = make([]Cell, len(row))
		copy(out[r], row)
	}
	return out
}

func gridsEqual(a, b Grid) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
