// Package commands provides the CLI commands for echoctl.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echoctl/echoctl/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	deviceFlag  string
	jsonFlag    bool
	noColorFlag bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "echoctl",
	Short: "echoctl - control Amazon Alexa devices from the terminal",
	Long: `echoctl talks to the Alexa web API with your browser session cookie
and lets you list devices, control playback, manage alarms, timers,
reminders, Do Not Disturb, Bluetooth and multiroom groups.

Run 'echoctl devices' to see your devices, then target one with
--device (or set defaultDevice in the config file).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	// Unmatched names fall through here and go to the dispatcher so the
	// caller still gets suggestions for near misses.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runAction(cmd, args[0], args[1:])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "Target device by name or serial number")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("echoctl %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(debugCmd)
	for _, c := range actionCommands() {
		rootCmd.AddCommand(c)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initLogging configures the global logger from the flag or, when the flag
// is empty, from the loaded config.
func initLogging(configured string) {
	level := logLevel
	if level == "" {
		level = configured
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(level),
		Output: os.Stderr,
		Pretty: !jsonFlag,
	})
}
