// Command treeguess plays twenty questions with a trained decision tree.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	configFile string
	modelPath  string
	logLevel   string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "treeguess",
		Short:        "treeguess guesses the character you are thinking of",
		Long:         `Serve or play a twenty-questions game driven by a decision tree trained with scikit-learn`,
		SilenceUsage: true,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().StringVarP(&(config.configFile), "config", "c", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&(config.modelPath), "model", "m", "", "path to the exported tree (JSON or YAML); overrides model.path")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "", "debug, info, warn or error; overrides log.level")
	rootCmd.AddCommand(
		versionCmd(),
		serveCmd(config),
		nodeCmd(config),
		playCmd(config),
		pathsCmd(config),
		reportCmd(config),
	)
	return rootCmd
}
