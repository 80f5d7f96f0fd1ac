package mazeapi

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
)

const defaultDimension = 10

var ErrSeedAndPhrase = errors.New("seed and phrase are mutually exclusive")

// GenerateRequest describes a maze, either as query parameters or as a JSON body.
type GenerateRequest struct {
	Algorithm           string   `form:"algorithm" json:"algorithm"`
	Width               *int     `form:"width" json:"width"`
	Height              *int     `form:"height" json:"height"`
	Seed                string   `form:"seed" json:"seed"`
	Phrase              string   `form:"phrase" json:"phrase"`
	MergeProbability    *float64 `form:"merge_probability" json:"merge_probability"`
	VerticalProbability *float64 `form:"vertical_probability" json:"vertical_probability"`
	Policy              string   `form:"policy" json:"policy"`
	NewestRatio         *float64 `form:"newest_ratio" json:"newest_ratio"`
}

// toDomain resolves defaults and parses the textual fields.
func (r GenerateRequest) toDomain() (dmn.GenerateRequest, error) {
	req := dmn.GenerateRequest{
		Algorithm: maze.AlgorithmBacktracking,
		Width:     defaultDimension,
		Height:    defaultDimension,
	}

	if r.Algorithm != "" {
		alg, err := maze.ParseAlgorithm(r.Algorithm)
		if err != nil {
			return req, err
		}
		req.Algorithm = alg
	}
	if r.Width != nil {
		req.Width = *r.Width
	}
	if r.Height != nil {
		req.Height = *r.Height
	}

	switch {
	case r.Seed != "" && r.Phrase != "":
		return req, ErrSeedAndPhrase
	case r.Seed != "":
		seed, err := maze.ParseSeed(r.Seed)
		if err != nil {
			return req, err
		}
		req.Seed = &seed
	case r.Phrase != "":
		seed := maze.SeedFromPhrase(r.Phrase)
		req.Seed = &seed
	}

	opts, err := r.options()
	if err != nil {
		return req, err
	}
	req.Options = opts
	return req, nil
}

func (r GenerateRequest) options() (*maze.Options, error) {
	var opts maze.Options

	if r.MergeProbability != nil || r.VerticalProbability != nil {
		ellers := maze.DefaultEllersOptions()
		if r.MergeProbability != nil {
			ellers.MergeProbability = *r.MergeProbability
		}
		if r.VerticalProbability != nil {
			ellers.VerticalProbability = *r.VerticalProbability
		}
		opts.Ellers = &ellers
	}

	if r.Policy != "" || r.NewestRatio != nil {
		growing := maze.DefaultGrowingTreeOptions()
		if r.Policy != "" {
			policy, err := maze.ParsePolicy(r.Policy)
			if err != nil {
				return nil, err
			}
			growing.Policy = policy
		}
		if r.NewestRatio != nil {
			growing.NewestRatio = *r.NewestRatio
		}
		opts.GrowingTree = &growing
	}

	if opts.Ellers == nil && opts.GrowingTree == nil {
		return nil, nil
	}
	return &opts, nil
}

// PosDTO is a cell position.
type PosDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPos(c maze.Coordinates) PosDTO {
	return PosDTO{X: c.X, Y: c.Y}
}

// MazeResponse is the JSON form of a maze.
// Cells holds one passage mask per cell in row-major order: bit 0 north, 1 east,
// 2 south and 3 west.
type MazeResponse struct {
	ID        string     `json:"id,omitempty"`
	Algorithm string     `json:"algorithm"`
	Seed      string     `json:"seed"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Start     PosDTO     `json:"start"`
	Goal      PosDTO     `json:"goal"`
	Cells     []int      `json:"cells"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// toResponse converts a record; persisted reports whether ID and CreatedAt mean anything.
func toResponse(record *dmn.MazeRecord, persisted bool) *MazeResponse {
	m := record.Maze
	cells := m.Cells()
	resp := &MazeResponse{
		Algorithm: string(record.Algorithm),
		Seed:      record.Seed.String(),
		Width:     m.Width(),
		Height:    m.Height(),
		Start:     toPos(m.Start()),
		Goal:      toPos(m.Goal()),
		Cells:     make([]int, len(cells)),
	}
	for i, c := range cells {
		resp.Cells[i] = int(c)
	}
	if persisted {
		createdAt := record.CreatedAt
		resp.ID = record.ID.String()
		resp.CreatedAt = &createdAt
	}
	return resp
}

// CarveEvent is streamed for every passage in carving order.
type CarveEvent struct {
	Type string `json:"type"`
	From PosDTO `json:"from"`
	To   PosDTO `json:"to"`
}

// DoneEvent closes a carve stream with the finished maze.
type DoneEvent struct {
	Type string        `json:"type"`
	Maze *MazeResponse `json:"maze"`
}

// AlgorithmsResponse lists the supported algorithms.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
	Policies   []string `json:"policies"`
	Formats    []string `json:"formats"`
}

func describeRequest(req dmn.GenerateRequest) string {
	return fmt.Sprintf("%s %dx%d", req.Algorithm, req.Width, req.Height)
}
