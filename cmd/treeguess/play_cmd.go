package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/treeguess/game"
	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

func playCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the game in the terminal",
		Long:  `Think of a character and answer the questions with yes or no until the tree makes its guess`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(rootConfig, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return play(a.resolver, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// play asks questions on out and reads answers from in until it reaches a guess.
func play(r *game.Resolver, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	res, err := r.Start()
	if err != nil {
		return err
	}
	for !res.IsGuess() {
		fmt.Fprintf(out, "%s [yes/no] ", res.Question.Text)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "read answer")
			}
			return errors.New("input ended before the game did")
		}
		yes, err := game.ParseAnswer(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, "Please answer yes or no.")
			continue
		}
		next, err := r.Follow(res.ID(), yes)
		if err != nil {
			return err
		}
		if res, err = r.Resolve(next); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "You are thinking of %s! (%.0f%% sure)\n", res.Guess.Label, res.Guess.Confidence*100)
	return nil
}
