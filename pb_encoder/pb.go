// Package pb encodes mazes in the protobuf wire format described by maze.proto.
//
// The messages are small enough to be written directly with protowire, so no
// generated code is involved.
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

var _ i.MazeEncoder = &Protobuf{}

// Field numbers of the Maze and Pos messages.
const (
	mazeWidthField  protowire.Number = 1
	mazeHeightField protowire.Number = 2
	mazeStartField  protowire.Number = 3
	mazeGoalField   protowire.Number = 4
	mazeCellsField  protowire.Number = 5

	posXField protowire.Number = 1
	posYField protowire.Number = 2
)

var ErrMalformed = errors.New("malformed maze message")

// Protobuf is the protobuf implementation of i.MazeEncoder.
type Protobuf struct{}

// ContentType implements i.MazeEncoder.
func (p *Protobuf) ContentType() string {
	return "application/x-protobuf"
}

// MarshalMaze implements i.MazeEncoder.
func (p *Protobuf) MarshalMaze(m *maze.Maze) ([]byte, error) {
	if m == nil {
		return nil, errors.New("marshal maze: nil maze")
	}
	width, height := m.Size()

	var b []byte
	b = appendInt32(b, mazeWidthField, width)
	b = appendInt32(b, mazeHeightField, height)
	b = protowire.AppendTag(b, mazeStartField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalPos(m.Start()))
	b = protowire.AppendTag(b, mazeGoalField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalPos(m.Goal()))
	b = protowire.AppendTag(b, mazeCellsField, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Cells())
	return b, nil
}

// UnmarshalMaze implements i.MazeEncoder.
// The decoded maze is validated, so corrupted passages are reported as errors.
func (p *Protobuf) UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var (
		width, height int
		start, goal   maze.Coordinates
		cells         []byte
	)

	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == mazeWidthField && typ == protowire.VarintType:
			return consumeInt32(b, &width)
		case num == mazeHeightField && typ == protowire.VarintType:
			return consumeInt32(b, &height)
		case num == mazeStartField && typ == protowire.BytesType:
			return consumePos(b, &start)
		case num == mazeGoalField && typ == protowire.BytesType:
			return consumePos(b, &goal)
		case num == mazeCellsField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			cells = append([]byte(nil), v...)
			return n, nil
		}
		return skip(num, typ, b)
	})
	if err != nil {
		return nil, err
	}

	m, err := maze.FromCells(width, height, start, goal, cells)
	if err != nil {
		return nil, fmt.Errorf("unmarshal maze: %w", err)
	}
	return m, nil
}

func marshalPos(c maze.Coordinates) []byte {
	var b []byte
	b = appendInt32(b, posXField, c.X)
	b = appendInt32(b, posYField, c.Y)
	return b
}

func consumePos(b []byte, c *maze.Coordinates) (int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	err := consumeFields(v, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == posXField && typ == protowire.VarintType:
			return consumeInt32(b, &c.X)
		case num == posYField && typ == protowire.VarintType:
			return consumeInt32(b, &c.Y)
		}
		return skip(num, typ, b)
	})
	return n, err
}

// consumeFields walks every field of a message and hands its value to fn, which
// returns the number of bytes it consumed.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, err)
		}
		b = b[n:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

// appendInt32 writes v as a proto int32; zero values are omitted like proto3 does.
func appendInt32(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(int32(v))))
}

func consumeInt32(b []byte, dst *int) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = int(int32(v))
	return n, nil
}
