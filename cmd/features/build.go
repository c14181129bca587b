package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/pkg/artifact"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/rxtech-lab/argo-features/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
)

func buildFlags() []cli.Flag {
	return append(sourceFlags(),
		&cli.StringFlag{
			Name:  "variant",
			Usage: "Feature layout (minimal or enhanced)",
		},
		&cli.IntFlag{
			Name:  "horizon",
			Usage: "Label lookahead in candles",
		},
		&cli.BoolFlag{
			Name:  "parallel",
			Usage: "Compute feature columns concurrently",
		},
	)
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the feature dataset and write the scaler parameters",
		Flags: append(buildFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory for the artifacts",
			},
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "Also write the filtered dataset to this Parquet file",
			},
		),
		Action: buildAction,
	}
}

func buildAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	candles, err := loadCandles(ctx, cfg, log, nil)
	if err != nil {
		return err
	}

	builder, err := features.NewBuilder(cfg.BuilderConfig(), log)
	if err != nil {
		return err
	}

	dataset, err := builder.Build(ctx, candles)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeArtifactFailed, err, "failed to create %s", cfg.OutputDir)
	}

	scalerPath := filepath.Join(cfg.OutputDir, artifact.ScalerParamsFile)
	if err := artifact.NewScalerParams(dataset.Profile, cfg.Variant).Write(scalerPath); err != nil {
		return err
	}

	fmt.Printf("Built %d samples with %d features, %.1f%% positive\n",
		dataset.Features.Len(), dataset.Features.Width(), dataset.PositiveShare()*100)
	fmt.Printf("Scaler parameters written to %s\n", scalerPath)

	if path := cmd.String("dataset"); path != "" {
		if _, err := writer.NewDatasetWriter(path, log).Write(ctx, dataset); err != nil {
			return err
		}

		fmt.Printf("Dataset written to %s\n", path)
	}

	return nil
}
