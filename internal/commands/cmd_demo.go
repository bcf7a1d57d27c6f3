package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/yutounun/storetracker/internal/core/logging"
	"github.com/yutounun/storetracker/internal/tracker"
	"github.com/yutounun/storetracker/internal/tui"
	"github.com/yutounun/storetracker/pkg/profiler"
)

type DemoCmd struct {
	flags        *Flags
	stateFile    string
	watch        bool
	profilerPort int
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Flags returns the demo flags for registration on the root command
func (cmd *DemoCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "state",
			Usage:       "JSON or YAML document whose top-level keys become extra stores",
			Sources:     cli.EnvVars("STORETRACKER_STATE"),
			Destination: &cmd.stateFile,
		},
		&cli.BoolFlag{
			Name:        "watch",
			Usage:       "reload the state document when it changes",
			Destination: &cmd.watch,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof and /debug/stores on localhost at the given port (e.g., 6060)",
			Sources:     cli.EnvVars("STORETRACKER_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the demo command to the application.
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Run the demo shop with the store panel mounted",
		UsageText: "storetracker demo [--state FILE] [--watch]",
		Description: `Opens a small shop screen whose cart, session and settings stores can be
inspected with the store panel. Press shift+z to show or hide the panel.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the demo. Exported for use as default command.
func (cmd *DemoCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *DemoCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	opts := tui.Options{
		StateFile: cmd.stateFile,
		Watch:     cmd.watch,
	}
	if opts.StateFile == "" {
		opts.StateFile = cfg.Demo.StateFile
		opts.Watch = opts.Watch || cfg.Demo.Watch
	}

	m, err := tui.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("start demo: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close demo")
		}
	}()

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		profServer.Handle("/debug/stores", tracker.Handler(m.Stores))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/stores", profServer.Addr())).
			Msg("store endpoint available")
	}

	log.Info().Str("state", opts.StateFile).Bool("watch", opts.Watch).Msg("starting demo")

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
