// Package main is the entry point for the licache license cache tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/licache/cmd/licache/commands"
	"go.trai.ch/licache/internal/app"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	_ "go.trai.ch/licache/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// No logger without components.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	return exitCode(commands.New(components.App).Execute(ctx), components.Logger)
}

// exitCode maps the outcome of a command to the process exit status.
// Cache failures were already shown per dependency, so only other errors
// are logged.
func exitCode(err error, log ports.Logger) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrCacheFailed):
		return 1
	default:
		log.Error(err)
		return 1
	}
}
