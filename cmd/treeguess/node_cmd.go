package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

func nodeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "node <id>",
		Short: "Print the question or guess at a node as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewValidationError("id", "must be an integer", args[0])
			}
			a, err := setup(rootConfig, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.resolver.Resolve(id)
			if err != nil {
				return err
			}
			var v any = res.Question
			if res.IsGuess() {
				v = res.Guess
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(v)
		},
	}
}
