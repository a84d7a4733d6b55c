package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/neural/internal/cli"
	"codeberg.org/snonux/neural/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command with its subcommands
	rootCmd := cli.CreateRootCommand(flags, processor.NewProcessor(flags))

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
