package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andreyvit/diff"
	"github.com/pkg/profile"
)

type harnessConfig struct {
	maxBytes int64
	repeats  int
	workers  int
	dataName string
}

func addHarnessFlags(fs *flag.FlagSet, cfg *harnessConfig, withRepeats bool) {
	fs.Int64Var(&cfg.maxBytes, "n", -1, "process only the prefix ending with the record containing this byte offset")
	if withRepeats {
		fs.IntVar(&cfg.repeats, "r", 1, "number of repetitions")
	} else {
		cfg.repeats = 1
	}
	fs.IntVar(&cfg.workers, "p", 8, "worker count")
	fs.StringVar(&cfg.dataName, "f", "measurements", "data set name under data/")
}

// dataPaths resolves a data set name to its input file data/<name>.txt and
// the baseline captured for it, data/<name>[_<maxBytes>].out.
func dataPaths(name string, maxBytes int64) (dataPath, baselinePath string) {
	dataPath = filepath.Join("data", name+".txt")
	base := name
	if maxBytes >= 0 {
		base = fmt.Sprintf("%s_%d", name, maxBytes)
	}
	baselinePath = filepath.Join("data", base+".out")
	return dataPath, baselinePath
}

// resultToBaseline flattens a summary string into the baseline file format:
// braces dropped, one key per line.
func resultToBaseline(result string) string {
	s := strings.ReplaceAll(result, ", ", "\n")
	s = strings.ReplaceAll(s, "{", "")
	return strings.ReplaceAll(s, "}", "")
}

func parseVersionArgs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one version index is required")
	}
	versions := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 || v >= len(summarizeVersions) {
			return nil, fmt.Errorf("invalid version %q: want 0..%d", arg, len(summarizeVersions)-1)
		}
		versions[i] = v
	}
	return versions, nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	var cfg harnessConfig
	addHarnessFlags(fs, &cfg, true)
	_ = fs.Parse(args)
	versions, err := parseVersionArgs(fs.Args())
	if err != nil {
		return err
	}
	return bench(cfg, versions)
}

// bench runs every requested version cfg.repeats times against the recorded
// baseline and reports min/avg/max wall-clock time per version.
func bench(cfg harnessConfig, versions []int) error {
	if cfg.repeats < 1 {
		return errors.New("repeats must be at least 1")
	}
	dataPath, baselinePath := dataPaths(cfg.dataName, cfg.maxBytes)
	expectedRaw, err := os.ReadFile(baselinePath)
	if err != nil {
		return fmt.Errorf("failed to read baseline (run `brc base` first): %w", err)
	}
	expected := strings.Split(strings.TrimRight(string(expectedRaw), "\n"), "\n")

	runtimes := make([][]time.Duration, len(versions))
	for rep := 1; rep <= cfg.repeats; rep++ {
		for vi, version := range versions {
			slog.Info("running", "repeat", rep, "repeats", cfg.repeats, "version", version)
			start := time.Now()
			result, err := summarizeVersions[version](dataPath, cfg.maxBytes, cfg.workers)
			if err != nil {
				return fmt.Errorf("version %d failed: %w", version, err)
			}
			runtimes[vi] = append(runtimes[vi], time.Since(start))
			if err := checkBaseline(result, expected, dataPath, version); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Results from %d repetitions:\n", cfg.repeats)
	for vi, version := range versions {
		minT, maxT := runtimes[vi][0], runtimes[vi][0]
		var total time.Duration
		for _, d := range runtimes[vi] {
			total += d
			if d < minT {
				minT = d
			}
			if d > maxT {
				maxT = d
			}
		}
		avg := total / time.Duration(cfg.repeats)
		fmt.Printf("V%d: %.2f / %.2f / %.2f\n", version, minT.Seconds(), avg.Seconds(), maxT.Seconds())
	}
	return nil
}

// checkBaseline compares one run line by line against the captured baseline.
// On the first mismatch the full output is persisted next to the data file
// and a line diff is printed.
func checkBaseline(result string, expected []string, dataPath string, version int) error {
	got := resultToBaseline(result)
	gotLines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	n := min(len(gotLines), len(expected))
	for i := 0; i < n; i++ {
		if gotLines[i] == expected[i] {
			continue
		}
		errPath := strings.TrimSuffix(dataPath, ".txt") + ".out.err"
		if werr := os.WriteFile(errPath, []byte(got), 0o644); werr != nil {
			slog.Error("failed to write mismatch artifact", "path", errPath, "error", werr)
		}
		fmt.Println(diff.LineDiff(
			diff.TrimLinesInString(strings.Join(expected, "\n")),
			diff.TrimLinesInString(got)))
		return fmt.Errorf("output for version %d does not match baseline on line %d (full output in %s)", version, i, errPath)
	}
	return nil
}

// runBase captures the canonical output once and persists it as the baseline
// for later bench runs. An existing baseline is never overwritten.
func runBase(args []string) error {
	fs := flag.NewFlagSet("base", flag.ExitOnError)
	var cfg harnessConfig
	addHarnessFlags(fs, &cfg, false)
	_ = fs.Parse(args)
	versions, err := parseVersionArgs(fs.Args())
	if err != nil {
		return err
	}
	if len(versions) != 1 {
		return errors.New("base takes exactly one version")
	}

	dataPath, baselinePath := dataPaths(cfg.dataName, cfg.maxBytes)
	if _, err := os.Stat(baselinePath); err == nil {
		return fmt.Errorf("baseline already exists: %s", baselinePath)
	}
	result, err := summarizeVersions[versions[0]](dataPath, cfg.maxBytes, cfg.workers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(baselinePath, []byte(resultToBaseline(result)), 0o644); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	slog.Info("baseline written", "path", baselinePath)
	return nil
}

// runProfile runs the bench loop for one version under a CPU profile,
// writing cpu.pprof to the working directory for `go tool pprof`.
func runProfile(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	var cfg harnessConfig
	addHarnessFlags(fs, &cfg, true)
	_ = fs.Parse(args)
	versions, err := parseVersionArgs(fs.Args())
	if err != nil {
		return err
	}
	if len(versions) != 1 {
		return errors.New("profile takes exactly one version")
	}
	if _, baselinePath := dataPaths(cfg.dataName, cfg.maxBytes); !fileExists(baselinePath) {
		return fmt.Errorf("no baseline at %s: run `brc base` with the same arguments first", baselinePath)
	}

	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	return bench(cfg, versions)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
