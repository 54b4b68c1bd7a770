// Package cmd implements the shmctl command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/srediag/shmopen/internal/config"
	"github.com/srediag/shmopen/internal/logging"
	"github.com/srediag/shmopen/pkg/shm"
)

// exitCode ends the process with a status and no message.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

type globalState struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
	logger *logrus.Logger

	logLevel string
	noColor  bool
}

func newRootCommand(gs *globalState) *cobra.Command {
	root := &cobra.Command{
		Use:           "shmctl",
		Short:         "Create, inspect and remove POSIX shared memory objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(gs.stderr, gs.logLevel, "shmctl", !gs.noColor && isTerminal(gs.stderr))
			if err != nil {
				return err
			}
			gs.logger = logger
			return nil
		},
	}

	root.PersistentFlags().AddFlagSet(rootPersistentFlagSet(gs))
	root.AddCommand(
		getCmdCreate(gs),
		getCmdOpen(gs),
		getCmdUnlink(gs),
		getCmdExists(gs),
		getCmdServeHealth(gs),
	)
	return root
}

func rootPersistentFlagSet(gs *globalState) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVar(&gs.logLevel, "log-level", gs.cfg.LogLevel, "log level: trace, debug, info, warn, error, silent or 0-5")
	flags.BoolVar(&gs.noColor, "no-color", false, "disable colored output")
	return flags
}

// Execute runs shmctl with the process arguments and returns the exit status.
func Execute(ctx context.Context) int {
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	gs := &globalState{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: logging.Discard(),
	}
	root := newRootCommand(gs)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			return int(code)
		}
		printError(gs, err)
		return 1
	}
	return 0
}

func printError(gs *globalState, err error) {
	c := color.New(color.FgRed)
	if gs.noColor {
		c.DisableColor()
	}
	if kind := shm.KindOf(err); kind != shm.KindOther {
		_, _ = c.Fprintf(gs.stderr, "error [%s]: %v\n", kind, err)
		return
	}
	_, _ = c.Fprintf(gs.stderr, "error: %v\n", err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
