package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/usecase/chat"
	"github.com/mkino/larder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func (cfg *config) newSession() (*chat.Session, error) {
	llm, err := cfg.newLLM()
	if err != nil {
		return nil, err
	}
	translator, err := cfg.newTranslator()
	if err != nil {
		return nil, err
	}
	api, err := cfg.newInventoryAPI()
	if err != nil {
		return nil, err
	}
	prefs, err := cfg.loadPreferences()
	if err != nil {
		return nil, err
	}

	return chat.New(chat.NewInput{
		LLM:             llm,
		Translator:      translator,
		API:             api,
		ExplainTemplate: prefs.ExplainTemplate,
	}), nil
}

func printExchange(w io.Writer, ex model.Exchange) {
	switch ex.Stage {
	case model.StageError:
		fmt.Fprintf(w, "error: %s\n", ex.Err)
	case model.StageDone:
		if ex.Result != nil && ex.Result.SQL != "" {
			fmt.Fprintf(w, "[sql] %s\n\n", ex.Result.SQL)
		}
		fmt.Fprintf(w, "%s\n", ex.Response)
	default:
		fmt.Fprintf(w, "(still %s)\n", ex.Stage)
	}
}

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive inventory chat",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, logging.New(cfg.logLevel, c.Root().ErrWriter))

			session, err := cfg.newSession()
			if err != nil {
				return err
			}

			rl, err := readline.New("larder> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			fmt.Fprintln(c.Root().Writer, "Ask about your inventory, or tell me what to do. Type 'exit' to quit.")

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				question := strings.TrimSpace(line)
				if question == "" {
					continue
				}
				if question == "exit" || question == "quit" {
					break
				}

				// Input stays blocked until this turn settles.
				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " thinking..."
				sp.Start()
				ex := session.Submit(ctx, question)
				sp.Stop()

				printExchange(c.Root().Writer, ex)
			}

			return nil
		},
	}
}
