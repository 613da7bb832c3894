// Package main is the entry point for the vmi CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viewmodes/vmi/internal/cmd"
	oerrors "github.com/viewmodes/vmi/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts cancel in-flight store writes; a bundle is saved whole or not at all.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return oerrors.ExitCodeFromError(err)
}
