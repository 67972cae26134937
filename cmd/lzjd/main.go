// Command lzjd calculates the Lempel-Ziv Jaccard distance of input
// binaries.
//
// The default mode hashes each input into a digest line of the form
// lzjd:<name>:<base64 sketch>. Compare mode (-c) reads one or two
// already-generated digest files and emits thresholded pairwise
// similarities; gen-compare mode (-g) hashes raw inputs and compares all
// pairs in one run. Output lines are <a>|<b>|<similarity %03d>.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"

	"github.com/tamirms/lzjd"
	lzjderrors "github.com/tamirms/lzjd/errors"
	"github.com/tamirms/lzjd/hashers"
	"github.com/tamirms/lzjd/internal/fsource"
)

type cli struct {
	Deep       bool     `short:"r" help:"Recurse into directories when collecting inputs."`
	Compare    bool     `short:"c" help:"Compare digests within one digest file, or across two."`
	GenCompare bool     `short:"g" help:"Hash the inputs and compare all pairs."`
	Threshold  int      `short:"t" default:"1" help:"Only show results with similarity >= threshold."`
	Threads    int      `short:"p" default:"0" help:"Restrict compute threads (0 = logical core count)."`
	Output     string   `short:"o" placeholder:"FILE" help:"Send output to FILE instead of stdout."`
	Input      []string `arg:"" help:"Input files or directories."`
}

func main() {
	var params cli
	kong.Parse(&params,
		kong.Name("lzjd"),
		kong.Description("Calculates the Lempel-Ziv Jaccard distance of input binaries."))
	if err := run(params); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(params cli) error {
	workers := params.Threads
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		return fmt.Errorf("%w: got %d", lzjderrors.ErrBadWorkers, params.Threads)
	}

	inputs, err := expandInputs(params.Input, params.Deep)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return lzjderrors.ErrNoInputs
	}

	out, closeOut, err := openOutput(params.Output)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch {
	case params.Compare:
		err = compareDigestFiles(ctx, inputs, params.Threshold, workers, out)
	case params.GenCompare:
		var records []lzjd.DigestRecord
		records, err = hashInputs(ctx, inputs, workers)
		if err == nil {
			err = compareRecords(ctx, records, records, params.Threshold, workers, out)
		}
	default:
		var records []lzjd.DigestRecord
		records, err = hashInputs(ctx, inputs, workers)
		if err == nil {
			err = lzjd.WriteRecords(out, records)
		}
	}
	return errors.Join(err, closeOut())
}

// expandInputs resolves the input arguments. With deep set, directories
// are walked recursively and every regular file found is an input.
func expandInputs(paths []string, deep bool) ([]string, error) {
	if !deep {
		return paths, nil
	}
	var inputs []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				inputs = append(inputs, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return inputs, nil
}

// hashInputs sketches every input file in parallel, preserving input order.
func hashInputs(ctx context.Context, paths []string, workers int) ([]lzjd.DigestRecord, error) {
	sources := make([]lzjd.Source, len(paths))
	for i, path := range paths {
		sources[i] = fsource.New(path)
	}
	return lzjd.HashSources(ctx, sources, hashers.NewMurmur3, lzjd.WithWorkers(workers))
}

// compareDigestFiles diffs one digest file against itself (upper triangle
// only) or two digest files against each other (full cross product).
func compareDigestFiles(ctx context.Context, paths []string, threshold, workers int, out io.Writer) error {
	if len(paths) > 2 {
		return lzjderrors.ErrTooManyInputs
	}
	recordsA, err := readDigestFile(paths[0])
	if err != nil {
		return err
	}
	recordsB := recordsA
	if len(paths) == 2 {
		if recordsB, err = readDigestFile(paths[1]); err != nil {
			return err
		}
	}
	return compareRecords(ctx, recordsA, recordsB, threshold, workers, out)
}

func compareRecords(ctx context.Context, a, b []lzjd.DigestRecord, threshold, workers int, out io.Writer) error {
	results, err := lzjd.CompareAll(ctx, a, b, threshold, lzjd.WithWorkers(workers))
	if err != nil {
		return err
	}
	return lzjd.WriteResults(out, results)
}

func readDigestFile(path string) ([]lzjd.DigestRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := lzjd.ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// openOutput returns a buffered writer on the selected destination and a
// function that flushes (and closes, for files) it.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		w := bufio.NewWriter(os.Stdout)
		return w, w.Flush, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		return errors.Join(w.Flush(), f.Close())
	}, nil
}
