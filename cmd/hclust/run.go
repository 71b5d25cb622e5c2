package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TrevorS/hclust"
	"github.com/TrevorS/hclust/internal/dataio"
)

type runOptions struct {
	input     string
	linkage   string
	metric    string
	distances bool
	matrix    bool
	cut       int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a dataset and print the dendrogram",
		Long: `Cluster a dataset and print the dendrogram.

The input is a YAML or JSON mapping from identifier to a list of numbers.
Missing coordinates may be written as null, ~, .nan or "?".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.input == "" {
				return errors.New("--input is required")
			}
			data, err := dataio.LoadFile(opts.input)
			if err != nil {
				return err
			}
			logger, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			metric, err := hclust.MetricByName(opts.metric)
			if err != nil {
				return err
			}
			cfg := hclust.DefaultConfig()
			cfg.Method = hclust.LinkageMethod(opts.linkage)
			cfg.Metric = metric
			cfg.ReturnDistances = opts.distances
			cfg.Logger = logger

			c, err := hclust.New(cfg)
			if err != nil {
				return err
			}
			return runClustering(cmd.OutOrStdout(), c, data, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the YAML or JSON dataset.")
	cmd.Flags().StringVarP(&opts.linkage, "linkage", "l", string(hclust.LinkageAverage), "Linkage: single, complete or average.")
	cmd.Flags().StringVarP(&opts.metric, "metric", "m", "euclidean", "Vector metric: euclidean or manhattan.")
	cmd.Flags().BoolVarP(&opts.distances, "distances", "d", false, "Annotate every merge with its distance.")
	cmd.Flags().BoolVar(&opts.matrix, "matrix", false, "Also print the merge history as a linkage matrix.")
	cmd.Flags().IntVar(&opts.cut, "cut", 0, "Also print flat labels after cutting the tree into this many clusters.")
	return cmd
}

func runClustering(w io.Writer, c *hclust.Clusterer, data *hclust.Dataset, opts *runOptions) error {
	clusters, err := c.Run(data)
	if err != nil {
		return err
	}
	if len(clusters) == 0 {
		fmt.Fprintln(w, "[]")
		return nil
	}
	fmt.Fprintln(w, clusters[0])

	if !opts.matrix && opts.cut == 0 {
		return nil
	}
	rows, err := c.RunLinkage(data)
	if err != nil {
		return err
	}
	if opts.matrix {
		for _, row := range rows {
			fmt.Fprintf(w, "%d\t%d\t%g\t%d\n", int(row[0]), int(row[1]), row[2], int(row[3]))
		}
	}
	if opts.cut > 0 {
		labels, err := hclust.FlatLabels(rows, data.Len(), opts.cut)
		if err != nil {
			return err
		}
		for i, id := range data.IDs() {
			fmt.Fprintf(w, "%s\t%d\n", id, labels[i])
		}
	}
	return nil
}
