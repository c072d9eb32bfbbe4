package config

// BuiltinPatterns returns the seed shapes every server knows about without
// any configuration. Config-file patterns with the same name take
// precedence.
func BuiltinPatterns() map[string]Pattern {
	return map[string]Pattern{
		"glider": {
			Name:  "glider",
			Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		},
		"blinker": {
			Name:  "blinker",
			Cells: [][2]int{{1, 0}, {1, 1}, {1, 2}},
		},
		"block": {
			Name:  "block",
			Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		"toad": {
			Name:  "toad",
			Cells: [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 1}, {2, 2}},
		},
	}
}
