// c2probe runs collision queries described in YAML scenario files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Alexander-r/c2d.go/internal/config"
	"github.com/Alexander-r/c2d.go/internal/logger"
	"github.com/Alexander-r/c2d.go/internal/scenario"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "check":
		cmdCheck(args)
	case "version":
		fmt.Printf("c2probe %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`c2probe - 2D collision query runner

Usage:
  c2probe <command> [options]

Commands:
  run [flags] <scenario.yaml>...   Evaluate every query and print a report
  check <scenario.yaml>...         Parse scenarios without running them
  version                          Print the version

Run flags:
  -config <file>    Config file (default ./c2probe.yaml if present)
  -debug            Enable debug logging
  -log <file>       Also write JSON logs to a rotated file
  -workers <n>      Queries evaluated at once
  -steps <n>        Default number of sweep steps
  -format <fmt>     Report format: text, yaml or msgpack
  -o <file>         Write the report to a file instead of stdout

Examples:
  c2probe run testdata/scenarios/example.yaml
  c2probe run -format yaml -workers 8 scenes/*.yaml
  c2probe check scenes/stack.yaml`)
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: c2probe run [flags] <scenario.yaml>...")
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, closeOut, err := openOutput(cfg.Output.Path)
	if err != nil {
		logger.Log.Error("cannot open output", zap.String("path", cfg.Output.Path), zap.Error(err))
		os.Exit(1)
	}
	defer closeOut()

	runner := scenario.NewRunner(logger.Named("runner"), cfg.Runner.Workers, cfg.Runner.SweepSteps)

	failed := false
	for _, path := range fs.Args() {
		if err := runFile(ctx, runner, path, out, cfg.Output.Format); err != nil {
			logger.Log.Error("scenario failed", zap.String("file", path), zap.Error(err))
			failed = true
		}
	}

	if failed {
		logger.Sync()
		os.Exit(1)
	}
}

func runFile(ctx context.Context, runner *scenario.Runner, path string, out io.Writer, format string) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx, sc)
	if err != nil {
		return err
	}

	return report.Encode(out, format)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: c2probe check <scenario.yaml>...")
		os.Exit(1)
	}

	failed := false
	for _, path := range args {
		sc, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: scenario %q, %d shapes, %d queries\n", path, sc.Name, len(sc.Shapes), len(sc.Queries))
	}

	if failed {
		os.Exit(1)
	}
}
