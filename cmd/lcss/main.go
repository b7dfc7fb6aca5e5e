package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/lcss/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("lcss")

type options struct {
	verbosity  int
	configFile string
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lcss",
		Short:         "A lossless CSS parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "configuration file (default: .lcss.yaml or .lcss.jsonc in the current directory)")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newRoundTripCmd(opts))
	rootCmd.AddCommand(newBenchCmd(opts))
	rootCmd.AddCommand(newStripCmd(opts))
	rootCmd.AddCommand(newReverseCmd(opts))
	rootCmd.AddCommand(newColorsCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// config loads the file named by --config, or looks in the current
// directory. A verbosity set in the file applies unless -v was given.
func (o *options) config() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.verbosity == 0 && cfg.Verbosity > 0 {
		commonlog.Configure(cfg.Verbosity, nil)
	}
	return cfg, nil
}
