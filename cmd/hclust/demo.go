package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrevorS/hclust"
)

func newDemoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Cluster a built-in three-item dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			data := hclust.NewDataset().
				MustAdd("a", []float64{1, 2}).
				MustAdd("b", []float64{2, 3}).
				MustAdd("c", []float64{5, 5})

			w := cmd.OutOrStdout()
			for _, withDistances := range []bool{false, true} {
				cfg := hclust.DefaultConfig()
				cfg.Method = hclust.LinkageAverage
				cfg.Metric = hclust.ManhattanMetric{}
				cfg.ReturnDistances = withDistances
				cfg.Logger = logger

				clusters, err := hclust.Run(data, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, clusters[0])
			}
			return nil
		},
	}
}
