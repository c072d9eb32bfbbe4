package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	m := Default()
	require.NoError(t, m.Validate())

	assert.Equal(t, 8, m.Board.Rows)
	assert.Equal(t, 8, m.Board.Columns)
	assert.Equal(t, 50, m.Board.MaxRows)
	assert.Equal(t, 0.5, m.Board.LiveProbability)
	assert.Contains(t, m.Patterns, "glider")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{"bad port", func(m *Model) { m.Server.Port = 0 }, "server.port"},
		{"negative rows", func(m *Model) { m.Board.Rows = -1 }, "must be positive"},
		{"rows over max", func(m *Model) { m.Board.Rows = 51 }, "exceeds configured maximum"},
		{"zero maxima", func(m *Model) { m.Board.MaxRows = 0 }, "maxima must be positive"},
		{"p_live out of range", func(m *Model) { m.Board.LiveProbability = 1.5 }, "p_live"},
		{"bad log level", func(m *Model) { m.Log.Level = "verbose" }, "log.level"},
		{"bad log format", func(m *Model) { m.Log.Format = "xml" }, "log.format"},
		{
			"pattern outside maxima",
			func(m *Model) {
				m.Patterns["huge"] = Pattern{Name: "huge", Cells: [][2]int{{99, 0}}}
			},
			"can never fit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Default()
			tc.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
