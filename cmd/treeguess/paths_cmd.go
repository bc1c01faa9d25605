package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/treeguess/game"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

type pathsCmdConfig struct {
	majority bool
	raw      bool
}

func pathsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pathsCmdConfig{}
	cmd := &cobra.Command{
		Use:   "paths <label>",
		Short: "List the answers that lead to a character",
		Long:  `Enumerate every root-to-leaf path ending in a leaf that holds the given label and print the questions and answers along it`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(rootConfig, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return printPaths(a.resolver, args[0], config, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&(config.majority), "majority", false, "only list leaves whose predicted label is the given one")
	cmd.Flags().BoolVar(&(config.raw), "raw", false, "print feature comparisons instead of questions")
	return cmd
}

func printPaths(r *game.Resolver, label string, config *pathsCmdConfig, out io.Writer) error {
	var opts []tree.PathOption
	if config.majority {
		opts = append(opts, tree.MajorityOnly())
	}

	n := 0
	for p := range r.Tree().FindPaths(label, opts...) {
		n++
		fmt.Fprintf(out, "Path %d (leaf %d):\n", n, p.Leaf)
		if config.raw {
			for _, step := range p.Steps {
				fmt.Fprintf(out, "  - %s\n", step)
			}
			continue
		}
		turns, err := r.Answers(p)
		if err != nil {
			return err
		}
		for _, turn := range turns {
			fmt.Fprintf(out, "  - %s\n", turn)
		}
	}
	if n == 0 {
		fmt.Fprintf(out, "No path found for %s.\n", label)
	}
	return nil
}
