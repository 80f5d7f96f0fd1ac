package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-maze/batch"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Mode is what a mazegen invocation does.
type Mode int

const (
	ModeGenerate Mode = iota // write a single maze
	ModeBatch                // run a batch file
	ModeHashKey              // hash an API key read from stdin
)

// Config is the validated command line.
type Config struct {
	Mode      Mode
	Algorithm maze.Algorithm
	Width     int
	Height    int
	Seed      *maze.Seed
	Options   *maze.Options
	Format    string
	Out       string // empty writes to stdout
	Batch     string
	OutDir    string
	Workers   int
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mazegen - generates perfect mazes.

Usage:
  mazegen [options]
  mazegen -batch FILE [-out-dir DIR]
  mazegen -hash-api-key < key.txt

Options:
`)
		flagSet.PrintDefaults()
	}

	algorithmFlag := flagSet.String("algorithm", string(maze.AlgorithmBacktracking), "Generation algorithm: backtracking, prims, ellers or growing-tree.")
	widthFlag := flagSet.Int("width", 10, "Number of columns.")
	heightFlag := flagSet.Int("height", 10, "Number of rows.")
	seedFlag := flagSet.String("seed", "", "64 hex digit seed. Random when neither -seed nor -phrase is set.")
	phraseFlag := flagSet.String("phrase", "", "Derive the seed from this phrase.")
	formatFlag := flagSet.String("format", batch.FormatText, "Output format: text, svg or pb.")
	outFlag := flagSet.String("out", "", "Output file. Defaults to stdout.")
	mergeFlag := flagSet.Float64("merge-probability", 0.5, "Eller's: chance of joining neighbouring sets.")
	verticalFlag := flagSet.Float64("vertical-probability", 0.5, "Eller's: chance of extra downward passages.")
	policyFlag := flagSet.String("policy", maze.PolicyMixed.String(), "Growing tree: newest, random or mixed.")
	ratioFlag := flagSet.Float64("newest-ratio", 0.5, "Growing tree: share of newest picks for the mixed policy.")
	batchFlag := flagSet.String("batch", "", "Generate every maze of this HCL file.")
	outDirFlag := flagSet.String("out-dir", ".", "Directory for batch output.")
	workersFlag := flagSet.Int("workers", 4, "Number of mazes a batch generates concurrently.")
	hashFlag := flagSet.Bool("hash-api-key", false, "Read an API key from stdin and print its bcrypt hash.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	switch {
	case *hashFlag && *batchFlag != "":
		return nil, false, &ExitError{Code: 2, Message: "-hash-api-key and -batch are mutually exclusive"}
	case *hashFlag:
		return &Config{Mode: ModeHashKey}, false, nil
	case *batchFlag != "":
		if *workersFlag <= 0 {
			return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be positive"}
		}
		return &Config{Mode: ModeBatch, Batch: *batchFlag, OutDir: *outDirFlag, Workers: *workersFlag}, false, nil
	}

	alg, err := maze.ParseAlgorithm(*algorithmFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if *widthFlag <= 0 || *heightFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid size: width and height must be positive"}
	}

	config := &Config{
		Mode:      ModeGenerate,
		Algorithm: alg,
		Width:     *widthFlag,
		Height:    *heightFlag,
		Format:    strings.ToLower(*formatFlag),
		Out:       *outFlag,
	}
	if !batch.ValidFormat(config.Format) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format %q: must be text, svg or pb", *formatFlag)}
	}

	switch {
	case *seedFlag != "" && *phraseFlag != "":
		return nil, false, &ExitError{Code: 2, Message: "-seed and -phrase are mutually exclusive"}
	case *seedFlag != "":
		seed, err := maze.ParseSeed(*seedFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		config.Seed = &seed
	case *phraseFlag != "":
		seed := maze.SeedFromPhrase(*phraseFlag)
		config.Seed = &seed
	}

	policy, err := maze.ParsePolicy(*policyFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	config.Options = &maze.Options{
		Ellers:      &maze.EllersOptions{MergeProbability: *mergeFlag, VerticalProbability: *verticalFlag},
		GrowingTree: &maze.GrowingTreeOptions{Policy: policy, NewestRatio: *ratioFlag},
	}
	if _, err := maze.New(config.Algorithm, nil, config.Options); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// Run executes the configured mode. Mazes go to stdout unless the config names a
// file; the API key for ModeHashKey is read from the first line of stdin.
func Run(ctx context.Context, config *Config, stdin io.Reader, stdout io.Writer, logger i.Logger) error {
	switch config.Mode {
	case ModeHashKey:
		return hashKey(stdin, stdout)
	case ModeBatch:
		jobs, err := batch.Load(config.Batch)
		if err != nil {
			return err
		}
		results, err := batch.Run(ctx, jobs, config.OutDir, &batch.RunOptions{Workers: config.Workers, Logger: logger})
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("generated %d mazes into %s", len(results), config.OutDir))
		return nil
	}

	seed := maze.RandomSeed()
	if config.Seed != nil {
		seed = *config.Seed
	}
	gen, err := maze.New(config.Algorithm, &seed, config.Options)
	if err != nil {
		return err
	}
	m, err := gen.Generate(config.Width, config.Height)
	if err != nil {
		return err
	}
	payload, err := batch.Encode(m, config.Format)
	if err != nil {
		return err
	}

	if config.Out == "" {
		_, err = stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(config.Out, payload, 0o644); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("wrote %s (%s %dx%d, seed %s)", config.Out, config.Algorithm, config.Width, config.Height, seed))
	return nil
}

func hashKey(stdin io.Reader, stdout io.Writer) error {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	key := strings.TrimRight(line, "\r\n")
	if key == "" {
		return &ExitError{Code: 2, Message: "no api key on stdin"}
	}

	hash, err := service.HashAPIKey(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
