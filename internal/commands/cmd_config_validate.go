package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/yutounun/storetracker/internal/core/config"
	"github.com/yutounun/storetracker/internal/core/styles"
	"github.com/yutounun/storetracker/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "storetracker config validate [options]",
				Description: "Validates the configuration file and the files it refers to, then prints warnings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	result := validationResult{Warnings: cfg.Warnings()}
	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		result.Errors = errorLines(err)
	}
	result.Valid = len(result.Errors) == 0

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		outputText(out, cmd.flags.ConfigPath, result)
	}

	if !result.Valid {
		return fmt.Errorf("invalid configuration: %d error(s)", len(result.Errors))
	}
	return nil
}

// errorLines splits aggregated field errors into one line per field.
func errorLines(err error) []string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, fmt.Sprintf("%s: %v", fe.Field, fe.Err))
	}
	return lines
}

func outputText(out io.Writer, configPath string, result validationResult) {
	if configPath == "" {
		configPath = "(defaults)"
	}
	_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render("Config "+configPath))
	_, _ = fmt.Fprintln(out, styles.DividerStyle.Render(strings.Repeat("─", 40)))

	for _, w := range result.Warnings {
		_, _ = fmt.Fprintln(out, styles.TextWarningStyle.Render(styles.IconWarning+" "+w.Category+": "+w.Message))
		if w.Item != "" {
			_, _ = fmt.Fprintf(out, "  Item: %s\n", w.Item)
		}
	}

	for _, e := range result.Errors {
		_, _ = fmt.Fprintln(out, styles.TextErrorStyle.Render(styles.IconNotifyError+" "+e))
	}

	_, _ = fmt.Fprintln(out)
	if result.Valid {
		_, _ = fmt.Fprintln(out, styles.TextSuccessStyle.Render("Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(out, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
