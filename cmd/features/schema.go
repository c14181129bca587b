package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the config file or of a provider download request",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Print the download request schema of this provider instead",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var (
				schema string
				err    error
			)

			if name := cmd.String("provider"); name != "" {
				schema, err = marketdata.GetDownloadConfigSchema(name)
			} else {
				schema, err = config.Schema()
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, schema)

			return nil
		},
	}
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the supported market data providers",
		Action: func(_ context.Context, cmd *cli.Command) error {
			infos := make([]marketdata.ProviderInfo, 0)

			for _, name := range marketdata.GetSupportedProviders() {
				info, err := marketdata.GetProviderInfo(name)
				if err != nil {
					return err
				}

				infos = append(infos, info)
			}

			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, string(data))

			return nil
		},
	}
}
