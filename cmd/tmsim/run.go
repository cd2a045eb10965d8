package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input] [output]",
	Short: "Decide every input string of a machine description",
	Long: `Loads the machine described in the input file (default entrada.txt), simulates
each listed input string and writes one verdict per line to the output file
(default saida.txt). On any error the message is printed and no output file is written.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		input, output := cli.DefaultInputPath, cli.DefaultOutputPath
		if len(args) > 0 {
			input = args[0]
		}
		if len(args) > 1 {
			output = args[1]
		}

		app := newApp(cmd)
		defer app.Close()

		ctx, stop := signalContext(cmd)
		defer stop()

		if _, err := cli.RunFiles(ctx, app, input, output); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default if no command is provided
	rootCmd.Args = runCmd.Args
	rootCmd.Run = runCmd.Run
}
