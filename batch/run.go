package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/vinom-maze/maze"
	pb "github.com/beka-birhanu/vinom-maze/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"golang.org/x/sync/errgroup"
)

// RunOptions tunes Run.
type RunOptions struct {
	// Workers bounds how many mazes are generated at once.
	Workers int

	// Logger receives one line per written maze. Optional.
	Logger i.Logger
}

// Result reports a written maze.
type Result struct {
	Name string
	Path string
	Seed maze.Seed // the seed actually used, so random jobs can be replayed
}

// Run generates every job and writes it below outDir, creating the directory when
// needed. The first failure cancels the jobs that have not started yet; results of
// the jobs that finished are returned either way, in job order.
func Run(ctx context.Context, jobs []*Job, outDir string, opts *RunOptions) ([]Result, error) {
	if opts == nil {
		opts = &RunOptions{}
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for idx, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runJob(job, outDir)
			if err != nil {
				return fmt.Errorf("maze %q: %w", job.Name, err)
			}
			results[idx] = res
			if opts.Logger != nil {
				opts.Logger.Info(fmt.Sprintf("wrote %s (%s %dx%d, seed %s)", res.Path, job.Algorithm, job.Width, job.Height, res.Seed))
			}
			return nil
		})
	}
	err := g.Wait()

	done := make([]Result, 0, len(jobs))
	for _, res := range results {
		if res != nil {
			done = append(done, *res)
		}
	}
	return done, err
}

func runJob(job *Job, outDir string) (*Result, error) {
	seed := maze.RandomSeed()
	if job.Seed != nil {
		seed = *job.Seed
	}

	gen, err := maze.New(job.Algorithm, &seed, job.Options)
	if err != nil {
		return nil, err
	}
	m, err := gen.Generate(job.Width, job.Height)
	if err != nil {
		return nil, err
	}

	payload, err := Encode(m, job.Format)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(outDir, job.Output)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return nil, err
	}
	return &Result{Name: job.Name, Path: path, Seed: seed}, nil
}

// Encode renders a maze in one of the batch output formats.
func Encode(m *maze.Maze, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatText:
		if err := maze.WriteText(&buf, m); err != nil {
			return nil, err
		}
	case FormatSVG:
		if err := maze.WriteSVG(&buf, m, maze.DefaultSVGOptions()); err != nil {
			return nil, err
		}
	case FormatPB:
		return (&pb.Protobuf{}).MarshalMaze(m)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidJob, format)
	}
	return buf.Bytes(), nil
}
