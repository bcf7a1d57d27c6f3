package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/yutounun/storetracker/internal/core/styles"
)

type ThemesCmd struct {
	flags *Flags
}

// NewThemesCmd creates a new themes command
func NewThemesCmd(flags *Flags) *ThemesCmd {
	return &ThemesCmd{flags: flags}
}

// Register adds the themes command to the application.
func (cmd *ThemesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "themes",
		Usage:  "List the available color themes",
		Action: cmd.run,
	})
	return app
}

func (cmd *ThemesCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer

	current := ""
	if cmd.flags.Config != nil {
		current = cmd.flags.Config.Theme
	}

	for _, name := range styles.ThemeNames() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", marker, name)
	}
	return nil
}
