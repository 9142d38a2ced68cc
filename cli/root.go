package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biswassri/kas-broker-plugins/constants"
	"github.com/biswassri/kas-broker-plugins/utils/logger"
)

var (
	configPath string
	logsFolder string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "partition-watcher",
	Short: "Operational tooling around the shared partition counter",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if logsFolder != "" {
			viper.Set(constants.LogsFolder, logsFolder)
		}
		logger.Init()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "", "", "(Required) Path to broker properties JSON")
	RootCmd.PersistentFlags().StringVarP(&logsFolder, "logs-dir", "", "", "(Optional) Directory for rotated log files")
	// Disable Cobra CLI's built-in usage and error handling
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
