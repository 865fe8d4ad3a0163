package generator

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"github.com/beka-birhanu/vinom-mazesolver/maze/bfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLattice(t *testing.T) {
	t.Run("Invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, -1}, {1, 1}, {maxLatticeDimension + 1, 2}} {
			_, err := NewLattice(dims[0], dims[1], 1)
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
		}
	})

	t.Run("Spanning tree", func(t *testing.T) {
		l, err := NewLattice(6, 4, 42)
		require.NoError(t, err)

		// A perfect maze over n rooms has exactly n-1 openings.
		openings := 0
		for _, row := range l.Grid {
			for _, room := range row {
				if !room.EastWall {
					openings++
				}
				if !room.SouthWall {
					openings++
				}
			}
		}
		assert.Equal(t, 6*4-1, openings)
	})

	t.Run("Outer walls stay closed", func(t *testing.T) {
		l, err := NewLattice(5, 3, 7)
		require.NoError(t, err)
		for col := 0; col < l.Width; col++ {
			assert.True(t, l.Grid[0][col].NorthWall)
			assert.True(t, l.Grid[l.Height-1][col].SouthWall)
		}
		for row := 0; row < l.Height; row++ {
			assert.True(t, l.Grid[row][0].WestWall)
			assert.True(t, l.Grid[row][l.Width-1].EastWall)
		}
	})

	t.Run("String", func(t *testing.T) {
		l, err := NewLattice(3, 2, 5)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(l.String(), "\n"), "\n")
		assert.Len(t, lines, 2*2+1)
		assert.Equal(t, "+---+---+---+", lines[0])
	})
}

func TestNew(t *testing.T) {
	t.Run("Dimensions", func(t *testing.T) {
		m, err := New(3, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, 2*pitch+1, m.Height())
		assert.Equal(t, 3*pitch+1, m.Width())

		start, ok := m.StartNode()
		require.True(t, ok)
		assert.Equal(t, maze.CellPosition{Row: 2, Col: 2}, start.Position())
		assert.Equal(t, []maze.Cell{maze.NewCell(pitch+2, 2*pitch+2, maze.End)}, m.EndNodes())
	})

	t.Run("Same seed same maze", func(t *testing.T) {
		a, err := New(8, 8, 99)
		require.NoError(t, err)
		b, err := New(8, 8, 99)
		require.NoError(t, err)
		assert.Equal(t, a.Rows(), b.Rows())
	})

	t.Run("Always solvable", func(t *testing.T) {
		solver := bfs.New()
		for seed := int64(0); seed < 25; seed++ {
			m, err := New(int(seed%7)+2, int(seed%5)+1, seed)
			require.NoError(t, err)

			res, err := maze.SolveResult(m, solver)
			require.NoError(t, err)
			assert.True(t, res.Found, "seed %d\n%s", seed, m)
		}
	})
}
