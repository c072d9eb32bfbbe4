// Package board implements the authoritative Game of Life grid: a bounded
// 2-D field of live/dead cells with a single mutex serializing every public
// operation. The engine owns the update rule, convergence detection, and all
// validation; it has no outbound dependencies and performs no logging or I/O.
package board
