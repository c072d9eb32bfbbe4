package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBoard(t *testing.T) {
	payload := map[string]any{
		"board": []any{
			[]any{float64(0), float64(1)},
			[]any{float64(1), float64(0)},
		},
		"rows":    float64(2),
		"columns": float64(2),
	}

	assert.Equal(t, ".#\n#.\n", renderBoard(payload))
}

func TestRenderBoardFallsBackToJSON(t *testing.T) {
	assert.Equal(t, `{"unexpected":true}`, renderBoard(map[string]any{"unexpected": true}))
	assert.Equal(t, `[1,2]`, renderBoard([]any{float64(1), float64(2)}))
}
