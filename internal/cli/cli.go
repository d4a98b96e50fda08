// Package cli implements the fsf terminal commands. Every command prints
// markdown, rendered for the terminal with glamour unless -raw is given.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/di"
	"github.com/fuzzysystem/finance/pkg/logger"
)

// Opener builds the service container a command runs against.
type Opener func(ctx context.Context) (*di.Container, error)

// DefaultOpener loads configuration from the environment and wires the
// container, logging warnings and errors to stderr.
func DefaultOpener(ctx context.Context) (*di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: "warn", Pretty: true, Output: os.Stderr})
	return di.Wire(ctx, cfg, log)
}

// Commands returns every fsf command.
func Commands(open Opener, out io.Writer) []subcommands.Command {
	base := base{open: open, out: out}
	return []subcommands.Command{
		&tickersCmd{base: base},
		&forecastCmd{base: base},
		&accuracyCmd{base: base},
		&optimizationCmd{base: base},
	}
}

// base carries what all commands share.
type base struct {
	open Opener
	out  io.Writer
	raw  bool
}

func (b *base) printMarkdown(md string) {
	if b.raw {
		fmt.Fprint(b.out, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var rendered string
		if rendered, err = r.Render(md); err == nil {
			fmt.Fprint(b.out, rendered)
			return
		}
	}
	fmt.Fprint(b.out, md)
}

func (b *base) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
