package main

import (
	"fmt"
	"log/slog"
	"os"
)

const usageText = `usage: brc <command> [flags] <version>...

commands:
  bench    time one or more summarizer versions against the recorded baseline
  base     record the baseline output for a data set
  profile  run bench for one version under a CPU profile
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "bench":
		err = runBench(os.Args[2:])
	case "base":
		err = runBase(os.Args[2:])
	case "profile":
		err = runProfile(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
