// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// zcl generates, inspects, and benchmarks zero-copy shard files.
//
// Commands:
//
//	zcl generate --dir D [--shards N] [--samples M] [--sample-size B] [--seed S]
//	zcl inspect [--digest] [--metadata] [--json] shard...
//	zcl bench [--config F] [--ahead K] [--mode auto|none|readahead] [--metrics-addr A] [shard...]
//
// Diagnostics go to stderr as structured logs: text when stderr is a
// terminal, JSON otherwise. Results go to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zcl/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// environment carries the process streams and logger into commands.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// command is one zcl subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{"generate", "write synthetic shards for benchmarking", runGenerate},
	{"inspect", "print header, sample statistics, and digests of shards", runInspect},
	{"bench", "compare buffered reads, raw mmap, and the loader", runBench},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "--version" {
		version.Print(stdout, "zcl")
		return nil
	}
	if len(args) == 0 || isHelpFlag(args[0]) {
		printUsage(stderr)
		if len(args) == 0 {
			return errors.New("command required")
		}
		return nil
	}

	env := &environment{
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, slog.LevelInfo, "auto"),
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(ctx, env, args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'zcl --help' for usage.", args[0])
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "zcl: zero-copy shard loader tools\n\nUsage: zcl <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nRun 'zcl <command> --help' for command flags, 'zcl --version' for build information.\n")
}

// parseFlags parses args into flagSet. A help request prints the flag
// usage and returns errHelp so the caller can exit cleanly.
func parseFlags(env *environment, flagSet *pflag.FlagSet, usage string, args []string) error {
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(env.stderr, "Usage: %s\n\nFlags:\n%s", usage, flagSet.FlagUsages())
			return errHelp
		}
		return fmt.Errorf("%w\n\nRun 'zcl %s --help' for usage.", err, flagSet.Name())
	}
	return nil
}

// errHelp is returned by parseFlags after printing help.
var errHelp = errors.New("help requested")
