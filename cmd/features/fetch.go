package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-features/pkg/marketdata"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/provider"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download candles to a Parquet file",
		Flags: append(sourceFlags(),
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Start date in `YYYY-MM-DD` format for Binance and Polygon",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "End date in `YYYY-MM-DD` format. Defaults to now.",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.StringFlag{
				Name:  "request",
				Usage: "Provider download request as JSON, see `features schema --provider`",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data output directory",
				Value:   "data",
			},
		),
		Action: fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params, err := cfg.FetchParams()
	if err != nil {
		return err
	}

	if request := cmd.String("request"); request != "" {
		downloadConfig, err := marketdata.ParseDownloadConfig(string(cfg.Source.Provider), request)
		if err != nil {
			return err
		}

		if params, err = downloadConfig.Params(); err != nil {
			return err
		}
	}

	if cmd.IsSet("start") {
		params.StartDate = cmd.Timestamp("start")
	}

	if cmd.IsSet("end") {
		params.EndDate = cmd.Timestamp("end")
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", params.Symbol)),
		progressbar.OptionShowCount(),
	)

	client, err := marketdata.NewClient(cfg.ClientConfig(cmd.String("data")), log, progressReporter(bar))
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	if err != nil {
		return err
	}

	_ = bar.Finish()

	fmt.Printf("\nDownloaded %s candles to %s\n", params.Symbol, path)

	return nil
}

// progressReporter maps provider progress onto a percentage bar.
func progressReporter(bar *progressbar.ProgressBar) provider.OnDownloadProgress {
	return func(current float64, total float64, message string) {
		bar.Describe(message)

		if total > 0 {
			_ = bar.Set(int(current / total * 100))
		}
	}
}
