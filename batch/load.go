// Package batch generates many mazes described in an HCL file.
//
// A batch file holds one block per maze:
//
//	maze "entrance" {
//	  algorithm = "growing-tree"
//	  width     = 20
//	  height    = max(10, 15)
//	  phrase    = "castle"
//	  format    = "svg"
//	  output    = format("%s.svg", lower("Entrance"))
//	  policy    = "mixed"
//	}
//
// Attribute expressions may call format, upper, lower, min, max and join, and read
// the process environment through env, as in env.HOME.
package batch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Output formats a job can write.
const (
	FormatText = "text"
	FormatSVG  = "svg"
	FormatPB   = "pb"
)

var extensions = map[string]string{
	FormatText: ".txt",
	FormatSVG:  ".svg",
	FormatPB:   ".pb",
}

// ValidFormat reports whether Encode supports format.
func ValidFormat(format string) bool {
	_, ok := extensions[format]
	return ok
}

var ErrInvalidJob = errors.New("invalid batch job")

// hclBatchFile is the top-level structure of a batch file.
type hclBatchFile struct {
	Mazes []*hclMaze `hcl:"maze,block"`
}

type hclMaze struct {
	Name                string   `hcl:"name,label"`
	Algorithm           string   `hcl:"algorithm"`
	Width               int      `hcl:"width"`
	Height              int      `hcl:"height"`
	Seed                string   `hcl:"seed,optional"`
	Phrase              string   `hcl:"phrase,optional"`
	Format              string   `hcl:"format,optional"`
	Output              string   `hcl:"output,optional"`
	MergeProbability    *float64 `hcl:"merge_probability,optional"`
	VerticalProbability *float64 `hcl:"vertical_probability,optional"`
	Policy              string   `hcl:"policy,optional"`
	NewestRatio         *float64 `hcl:"newest_ratio,optional"`
}

// Job is one validated maze of a batch.
type Job struct {
	Name      string
	Algorithm maze.Algorithm
	Width     int
	Height    int
	Seed      *maze.Seed // nil draws a random seed at run time
	Options   *maze.Options
	Format    string
	Output    string // file name relative to the output directory
}

// Load parses and validates the batch file at path.
func Load(path string) ([]*Job, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, diags)
	}
	return decode(file, path)
}

// ParseHCL parses and validates batch source held in memory.
// filename only appears in diagnostics.
func ParseHCL(src []byte, filename string) ([]*Job, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) ([]*Job, error) {
	var parsed hclBatchFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode batch file %s: %w", filename, diags)
	}

	jobs := make([]*Job, 0, len(parsed.Mazes))
	names := make(map[string]bool, len(parsed.Mazes))
	outputs := make(map[string]string, len(parsed.Mazes))
	for _, m := range parsed.Mazes {
		if names[m.Name] {
			return nil, fmt.Errorf("%w: duplicate maze %q in %s", ErrInvalidJob, m.Name, filename)
		}
		names[m.Name] = true

		job, err := newJob(m)
		if err != nil {
			return nil, fmt.Errorf("maze %q in %s: %w", m.Name, filename, err)
		}
		if other, ok := outputs[job.Output]; ok {
			return nil, fmt.Errorf("%w: mazes %q and %q both write %s", ErrInvalidJob, other, job.Name, job.Output)
		}
		outputs[job.Output] = job.Name
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func newJob(m *hclMaze) (*Job, error) {
	alg, err := maze.ParseAlgorithm(m.Algorithm)
	if err != nil {
		return nil, err
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidSize, m.Width, m.Height)
	}

	job := &Job{
		Name:      m.Name,
		Algorithm: alg,
		Width:     m.Width,
		Height:    m.Height,
		Format:    strings.ToLower(m.Format),
		Output:    m.Output,
	}

	switch {
	case m.Seed != "" && m.Phrase != "":
		return nil, fmt.Errorf("%w: seed and phrase are mutually exclusive", ErrInvalidJob)
	case m.Seed != "":
		seed, err := maze.ParseSeed(m.Seed)
		if err != nil {
			return nil, err
		}
		job.Seed = &seed
	case m.Phrase != "":
		seed := maze.SeedFromPhrase(m.Phrase)
		job.Seed = &seed
	}

	if job.Format == "" {
		job.Format = FormatText
	}
	ext, ok := extensions[job.Format]
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidJob, m.Format)
	}
	if job.Output == "" {
		job.Output = m.Name + ext
	}
	if strings.ContainsAny(job.Output, `/\`) || job.Output == "." || job.Output == ".." {
		return nil, fmt.Errorf("%w: output %q must be a plain file name", ErrInvalidJob, job.Output)
	}

	job.Options, err = options(m)
	if err != nil {
		return nil, err
	}
	// Surface bad options at load time rather than halfway through a run.
	if _, err := maze.New(job.Algorithm, nil, job.Options); err != nil {
		return nil, err
	}
	return job, nil
}

func options(m *hclMaze) (*maze.Options, error) {
	var opts maze.Options
	if m.MergeProbability != nil || m.VerticalProbability != nil {
		ellers := maze.DefaultEllersOptions()
		if m.MergeProbability != nil {
			ellers.MergeProbability = *m.MergeProbability
		}
		if m.VerticalProbability != nil {
			ellers.VerticalProbability = *m.VerticalProbability
		}
		opts.Ellers = &ellers
	}
	if m.Policy != "" || m.NewestRatio != nil {
		growing := maze.DefaultGrowingTreeOptions()
		if m.Policy != "" {
			policy, err := maze.ParsePolicy(m.Policy)
			if err != nil {
				return nil, err
			}
			growing.Policy = policy
		}
		if m.NewestRatio != nil {
			growing.NewestRatio = *m.NewestRatio
		}
		opts.GrowingTree = &growing
	}
	return &opts, nil
}

func evalContext() *hcl.EvalContext {
	env := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && hclIdentifier(k) {
			env[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// hclIdentifier reports whether an environment variable name can be used as an
// attribute name after env.
func hclIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return s != ""
}
