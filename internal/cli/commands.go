// Package cli provides the command-line interface for the bot.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kitegram",
		Short: "Kitegram - Zerodha Kite on Telegram",
		Long: `Kitegram bridges your Zerodha Kite account to Telegram: portfolio,
positions, orders and mutual funds as chat commands, with optional
AI-powered portfolio analysis via Gemini.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			envFile, _ := cmd.Flags().GetString("env")
			return runBot(debug, envFile)
		},
	}

	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("env", "", "Path to a .env file (default: .env in the working directory)")

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kitegram v%s\n", version)
		},
	}
}

func setupLogging(debug bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
