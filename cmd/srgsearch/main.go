package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/srgsearch/internal/cli"
	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, srgerrors.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}

// exitCode separates "no graph found" from usage and runtime errors.
func exitCode(err error) int {
	switch srgerrors.GetCode(err) {
	case srgerrors.ErrCodeBudgetExceeded:
		return 2
	case srgerrors.ErrCodeSpecViolation:
		return 3
	default:
		return 1
	}
}
