package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/model"
)

var (
	trainOut     string
	trainSamples int
	trainTrees   int
	trainSeed    uint64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the demo model and store it",
	Long: `Train the demonstration random forest on synthetic clusters and save
it through the configured storage backend. The service loads it from
model.path at startup.

Examples:
  pronounce train
  pronounce train --samples 400 --seed 7 --out models/experiment.msgpack`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newTaskApp(cmd.Context())
		if err != nil {
			return err
		}
		out := trainOut
		if out == "" {
			out = a.Cfg.Model.Path
		}
		tc := model.DefaultTrainConfig()
		tc.Samples = trainSamples
		tc.Trees = trainTrees
		tc.Seed = trainSeed

		return a.RunTask(cmd.Context(), func(ctx context.Context) error {
			forest, report, err := model.Train(tc)
			if err != nil {
				return err
			}
			if err := model.NewStore(a.Storage, out, a.Logger).Save(ctx, forest); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "trained %d trees on %d samples, held-out accuracy %.2f (%d samples) in %s\n",
				len(forest.Trees), report.TrainSize, report.Accuracy, report.TestSize, report.Duration.Round(time.Millisecond))
			fmt.Fprintf(w, "saved to %s\n", out)
			return nil
		})
	},
}

func init() {
	d := model.DefaultTrainConfig()
	trainCmd.Flags().StringVarP(&trainOut, "out", "o", "", "artifact path inside storage (default model.path)")
	trainCmd.Flags().IntVar(&trainSamples, "samples", d.Samples, "synthetic samples to generate")
	trainCmd.Flags().IntVar(&trainTrees, "trees", d.Trees, "trees in the forest")
	trainCmd.Flags().Uint64Var(&trainSeed, "seed", d.Seed, "random seed")
}
