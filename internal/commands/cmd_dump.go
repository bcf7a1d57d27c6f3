package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yutounun/storetracker/internal/core/statedoc"
	"github.com/yutounun/storetracker/internal/core/validate"
	"github.com/yutounun/storetracker/internal/tracker"
	"github.com/yutounun/storetracker/pkg/iojson"
)

type DumpCmd struct {
	flags      *Flags
	reader     iojson.FileReader
	only       []string
	jsonOutput bool
}

// dumpEntry is one line of `dump --json` output.
type dumpEntry struct {
	Name string `json:"name"`
	Dump string `json:"dump"`
}

// NewDumpCmd creates a new dump command
func NewDumpCmd(flags *Flags) *DumpCmd {
	return &DumpCmd{flags: flags}
}

// Register adds the dump command to the application.
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Print the panel dump of every store in a state document",
		UsageText: "storetracker dump [-f FILE] [--only GLOB]... [--json]",
		Description: `Reads a JSON or YAML document whose top-level keys are store names and
prints each store exactly as the expanded panel section shows it.

Examples:
  storetracker dump -f state.json
  cat state.yaml | storetracker dump --only 'cart*'`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringSliceFlag{
				Name:        "only",
				Usage:       "only dump stores whose name matches the glob (repeatable)",
				Destination: &cmd.only,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DumpCmd) run(_ context.Context, c *cli.Command) error {
	if err := validate.GlobPatternsField("only", cmd.only); err != nil {
		return fmt.Errorf("invalid --only: %w", err)
	}

	data, err := cmd.reader.ReadAll()
	if err != nil {
		return err
	}

	stores, err := statedoc.Parse(data)
	if err != nil {
		return err
	}

	stores, err = statedoc.Filter(stores, cmd.only)
	if err != nil {
		return fmt.Errorf("filter stores: %w", err)
	}

	if len(stores) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No stores found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, s := range stores {
			if err := iojson.WriteLine(out, dumpEntry{Name: s.Name, Dump: tracker.Dump(s.Value)}); err != nil {
				return fmt.Errorf("encode store: %w", err)
			}
		}
		return nil
	}

	for i, s := range stores {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "# %s\n%s\n", s.Name, tracker.Dump(s.Value))
	}
	return nil
}
