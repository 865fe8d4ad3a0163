package mazeio

import (
	"fmt"

	"github.com/beka-birhanu/vinom-mazesolver/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

// ContentTypeProtobuf is the media type of the wire encodings below.
const ContentTypeProtobuf = "application/x-protobuf"

// Field numbers of the Maze message.
const (
	mazeHeightField protowire.Number = 1
	mazeWidthField  protowire.Number = 2
	mazeCellsField  protowire.Number = 3
)

// Field numbers of the Solution message.
const (
	solutionIDField       protowire.Number = 1
	solutionFoundField    protowire.Number = 2
	solutionPathField     protowire.Number = 3
	solutionExpandedField protowire.Number = 4
)

// Solution is the wire view of a solved maze.
type Solution struct {
	ID       string
	Found    bool
	Path     []maze.CellPosition
	Expanded int
}

// MarshalMaze encodes m as a Maze message: height, width and one state byte per
// cell in row-major order.
func MarshalMaze(m *maze.Maze) []byte {
	cells := make([]byte, 0, m.Height()*m.Width())
	for c := range m.Nodes() {
		cells = append(cells, byte(c.State))
	}

	var b []byte
	b = protowire.AppendTag(b, mazeHeightField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Height()))
	b = protowire.AppendTag(b, mazeWidthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Width()))
	b = protowire.AppendTag(b, mazeCellsField, protowire.BytesType)
	b = protowire.AppendBytes(b, cells)
	return b
}

// UnmarshalMaze decodes a Maze message. Unknown fields are skipped.
func UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var height, width uint64
	var cells []byte

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == mazeHeightField && typ == protowire.VarintType:
			height, n = protowire.ConsumeVarint(b)
		case num == mazeWidthField && typ == protowire.VarintType:
			width, n = protowire.ConsumeVarint(b)
		case num == mazeCellsField && typ == protowire.BytesType:
			cells, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}

	if height > MaxDimension || width > MaxDimension {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrMalformed, ErrTooLarge, height, width)
	}
	if height == 0 || width == 0 || uint64(len(cells)) != height*width {
		return nil, fmt.Errorf("%w: %dx%d maze with %d cells", ErrMalformed, height, width, len(cells))
	}

	states := make([][]maze.CellState, height)
	for r := range states {
		states[r] = make([]maze.CellState, width)
		for c := range states[r] {
			s := maze.CellState(cells[uint64(r)*width+uint64(c)])
			if s > maze.End {
				return nil, fmt.Errorf("%w: state %d at (%d,%d)", ErrMalformed, s, r, c)
			}
			states[r][c] = s
		}
	}
	return maze.FromStates(states)
}

// MarshalSolution encodes s as a Solution message. The path is a packed list of
// row, column pairs.
func MarshalSolution(s Solution) []byte {
	var b []byte
	if s.ID != "" {
		b = protowire.AppendTag(b, solutionIDField, protowire.BytesType)
		b = protowire.AppendString(b, s.ID)
	}
	if s.Found {
		b = protowire.AppendTag(b, solutionFoundField, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	if len(s.Path) > 0 {
		var packed []byte
		for _, p := range s.Path {
			packed = protowire.AppendVarint(packed, uint64(p.Row))
			packed = protowire.AppendVarint(packed, uint64(p.Col))
		}
		b = protowire.AppendTag(b, solutionPathField, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	if s.Expanded > 0 {
		b = protowire.AppendTag(b, solutionExpandedField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(s.Expanded))
	}
	return b
}

// UnmarshalSolution decodes a Solution message.
func UnmarshalSolution(b []byte) (Solution, error) {
	var s Solution
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Solution{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == solutionIDField && typ == protowire.BytesType:
			var id string
			id, n = protowire.ConsumeString(b)
			s.ID = id
		case num == solutionFoundField && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			s.Found = protowire.DecodeBool(v)
		case num == solutionPathField && typ == protowire.BytesType:
			var packed []byte
			packed, n = protowire.ConsumeBytes(b)
			path, err := decodePath(packed)
			if err != nil {
				return Solution{}, err
			}
			s.Path = path
		case num == solutionExpandedField && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			s.Expanded = int(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return Solution{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return s, nil
}

func decodePath(b []byte) ([]maze.CellPosition, error) {
	var values []int
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		values = append(values, int(v))
		b = b[n:]
	}
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of path coordinates", ErrMalformed)
	}

	path := make([]maze.CellPosition, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		path = append(path, maze.CellPosition{Row: values[i], Col: values[i+1]})
	}
	return path, nil
}
