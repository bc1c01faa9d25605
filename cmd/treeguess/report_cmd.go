package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/treeguess/report"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

type reportCmdConfig struct {
	histogram string
	label     string
	majority  bool
}

func reportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &reportCmdConfig{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the loaded tree",
		Long:  `Print the tree's size, depth, resubstitution accuracy and per-class statistics, and optionally plot how many questions each path takes`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(rootConfig, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := report.Summarize(a.tree)
			if err != nil {
				return err
			}
			if err := s.Write(cmd.OutOrStdout()); err != nil {
				return err
			}
			if config.histogram == "" {
				return nil
			}

			var opts []tree.PathOption
			if config.majority {
				opts = append(opts, tree.MajorityOnly())
			}
			if err := report.Histogram(a.tree, config.label, config.histogram, opts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nhistogram written to %s\n", config.histogram)
			return nil
		},
	}
	cmd.Flags().StringVar(&(config.histogram), "histogram", "", "write a histogram of questions per path to this file (.png, .svg, .pdf)")
	cmd.Flags().StringVar(&(config.label), "label", "", "restrict the histogram to paths reaching this label")
	cmd.Flags().BoolVar(&(config.majority), "majority", false, "with --label, only count leaves predicting the label")
	return cmd
}
