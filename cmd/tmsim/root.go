package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/aretw0/tmsim/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tmsim [input] [output]",
	Short: "tmsim is a deterministic single-tape Turing machine simulator",
	Long: `tmsim loads a Turing machine description, decides every input string it lists
and writes one verdict per line to the output file.

Without a subcommand it behaves like "tmsim run".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every simulation step to stderr")
}

// newApp builds the App from the persistent flags, exiting on failure.
func newApp(cmd *cobra.Command) *cli.App {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	app, err := cli.NewApp(cmd.Context(), cli.Options{
		ConfigPath:     path,
		ConfigExplicit: cmd.Flags().Changed("config"),
		Debug:          debug,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return app
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
