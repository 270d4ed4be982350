package cli

import (
	"github.com/lingmod-tue/exmaralda-converter/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "exmaralda-converter",
	Short: "Convert EXMARaLDA transcriptions to tabular data dumps",
	Long: `exmaralda-converter reads EXMARaLDA basic-transcription files (.exb)
and flattens them into TSV data dumps, one row per annotation event.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
