package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/usecase/chat"
	"github.com/urfave/cli/v3"
)

func promptCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "prompt",
		Usage: "Manage the explanation prompt template",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the active explanation template",
				Flags: globalFlags(&cfg),
				Action: func(ctx context.Context, c *cli.Command) error {
					prefs, err := cfg.loadPreferences()
					if err != nil {
						return err
					}
					tmpl := prefs.ExplainTemplate
					if tmpl == "" {
						tmpl = chat.DefaultExplainTemplate()
					}
					fmt.Fprintln(c.Root().Writer, tmpl)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Replace the explanation template from a file ('-' for stdin)",
				ArgsUsage: "<file>",
				Flags:     globalFlags(&cfg),
				Action: func(ctx context.Context, c *cli.Command) error {
					path := c.Args().First()
					if path == "" {
						return goerr.New("template file is required")
					}

					var raw []byte
					var err error
					if path == "-" {
						raw, err = io.ReadAll(os.Stdin)
					} else {
						raw, err = os.ReadFile(path)
					}
					if err != nil {
						return goerr.Wrap(err, "failed to read template")
					}

					prefs, err := cfg.loadPreferences()
					if err != nil {
						return err
					}
					prefs.ExplainTemplate = string(raw)
					return cfg.savePreferences(prefs)
				},
			},
			{
				Name:  "reset",
				Usage: "Restore the built-in explanation template",
				Flags: globalFlags(&cfg),
				Action: func(ctx context.Context, c *cli.Command) error {
					prefs, err := cfg.loadPreferences()
					if err != nil {
						return err
					}
					prefs.ExplainTemplate = ""
					return cfg.savePreferences(prefs)
				},
			},
		},
	}
}
