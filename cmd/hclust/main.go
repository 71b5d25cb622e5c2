// Command hclust runs agglomerative hierarchical clustering on a YAML or
// JSON dataset and prints the resulting dendrogram.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose bool
}

// logger returns a development logger when --verbose is set and a no-op
// logger otherwise.
func (o *rootOptions) logger() (*zap.Logger, error) {
	if o.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "hclust",
		Short:         "Agglomerative hierarchical clustering with missing values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every merge to stderr.")
	root.AddCommand(newRunCmd(opts), newDemoCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hclust:", err)
		os.Exit(1)
	}
}
