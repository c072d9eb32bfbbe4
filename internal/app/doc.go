// Package app wires the lifegrid server together: it builds the logger,
// loads configuration, constructs the board engine, the live feed, and the
// HTTP transport, and owns the listen/shutdown lifecycle.
package app
