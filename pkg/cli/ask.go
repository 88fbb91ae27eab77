package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "One-shot question or command",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required")
			}

			ctx = logging.With(ctx, logging.New(cfg.logLevel, c.Root().ErrWriter))

			session, err := cfg.newSession()
			if err != nil {
				return err
			}

			ex := session.Submit(ctx, question)
			printExchange(c.Root().Writer, ex)

			if ex.Stage == model.StageError {
				return goerr.New("exchange failed", goerr.Value("error", ex.Err))
			}
			return nil
		},
	}
}
