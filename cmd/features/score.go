package main

import (
	"context"
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/features"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/artifact"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/urfave/cli/v3"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score the newest candle with exported linear weights",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:    "weights",
				Aliases: []string{"w"},
				Usage:   "Path to the linear model weights",
				Value:   artifact.LinearWeightsFile,
			},
		),
		Action: scoreAction,
	}
}

func scoreAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	weights, err := artifact.LoadLinearWeights(cmd.String("weights"))
	if err != nil {
		return err
	}

	candles, err := loadCandles(ctx, cfg, log, nil)
	if err != nil {
		return err
	}

	probability, err := scoreLatest(ctx, cfg, weights, candles)
	if err != nil {
		return err
	}

	direction := "DOWN"
	if probability > 0.5 {
		direction = "UP"
	}

	fmt.Printf("%s: P(up in %d candles) = %.4f (%s)\n", cfg.Source.CoinID, cfg.Horizon, probability, direction)

	return nil
}

// scoreLatest assembles the minimal layout and scores its newest row.
func scoreLatest(ctx context.Context, cfg config.Config, weights artifact.LinearWeights, candles []types.Candle) (float64, error) {
	layout, err := features.NewLayout(types.FeatureVariantMinimal, cfg.BuilderConfig().Layout)
	if err != nil {
		return 0, err
	}

	if len(layout) != weights.Width() {
		return 0, errors.Newf(errors.ErrCodeArtifactInvalid, "weights expect %d features, the minimal layout has %d", weights.Width(), len(layout))
	}

	var volumes []float64
	if types.HasVolume(candles) {
		volumes = types.Volumes(candles)
	}

	matrix, err := features.NewAssembler(layout).Assemble(ctx, types.Closes(candles), volumes)
	if err != nil {
		return 0, err
	}

	row := matrix.Last()
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.New(errors.ErrCodeInsufficientData, "newest row has undefined features")
		}
	}

	return weights.Probability(row)
}
