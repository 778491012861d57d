package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/packops/cmd/packops/commands"
	"github.com/arthur-debert/packops/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	style.Setup(os.Stdout)

	rootCmd := commands.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var failure *commands.FailureError
		if errors.As(err, &failure) {
			fmt.Fprintln(os.Stderr, style.Failure(failure.Title, failure.Detail))
		} else {
			fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
