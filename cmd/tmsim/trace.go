package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [input]",
	Short: "Print every step of a single simulation",
	Long: `Runs one input string against the machine description and prints the state,
tape and applied transition of every step as a markdown table.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := cli.DefaultInputPath
		if len(args) > 0 {
			input = args[0]
		}
		str, _ := cmd.Flags().GetString("string")
		plain, _ := cmd.Flags().GetBool("plain")

		app := newApp(cmd)
		defer app.Close()

		ctx, stop := signalContext(cmd)
		defer stop()

		pretty := !plain && cli.IsTerminal()
		if err := cli.TraceFile(ctx, app, input, str, os.Stdout, pretty); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringP("string", "s", "", "Input string to trace (empty for the empty string)")
	traceCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
