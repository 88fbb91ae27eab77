package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mkino/larder/pkg/usecase/forecast"
	"github.com/mkino/larder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func reorderCommand() *cli.Command {
	var (
		cfg       config
		timeframe int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "timeframe",
			Aliases:     []string{"t"},
			Usage:       "Planning horizon in days (1, 3, 7, 14 or 30)",
			Value:       7,
			Sources:     cli.EnvVars("LARDER_TIMEFRAME"),
			Destination: &timeframe,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "reorder",
		Usage: "Show which ingredients need reordering within a timeframe",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, logging.New(cfg.logLevel, c.Root().ErrWriter))

			api, err := cfg.newInventoryAPI()
			if err != nil {
				return err
			}

			entries, err := forecast.Report(ctx, api, int(timeframe))
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(c.Root().Writer, "Nothing needs attention within %d days.\n", timeframe)
				return nil
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "URGENCY\tINGREDIENT\tSTOCK\tON ORDER\tDAYS LEFT\tCONFIDENCE")
			for _, e := range entries {
				days := "-"
				if e.DaysUntilStockout != nil {
					days = fmt.Sprintf("%.1f", *e.DaysUntilStockout)
				}
				fmt.Fprintf(w, "%s\t%s\t%.1f %s\t%.1f\t%s\t%s\n",
					e.Tier, e.IngredientName, e.Stock, e.Unit, e.OnOrderQty, days, e.Confidence)
			}
			return w.Flush()
		},
	}
}
