package i

import "github.com/beka-birhanu/vinom-maze/maze"

// MazeEncoder serializes mazes for caching and transport.
type MazeEncoder interface {
	MarshalMaze(*maze.Maze) ([]byte, error)
	UnmarshalMaze([]byte) (*maze.Maze, error)
	// ContentType returns the media type of the encoded form.
	ContentType() string
}
