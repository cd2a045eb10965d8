package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [input]",
	Short: "Check a machine description for errors and suspicious constructs",
	Long: `Loads the machine description and reports unreachable states, transitions that
can never fire and input symbols outside the tape alphabet. Warnings do not fail
the command; load errors do.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := cli.DefaultInputPath
		if len(args) > 0 {
			input = args[0]
		}

		app := newApp(cmd)
		defer app.Close()

		if err := cli.ValidateFile(app, input, os.Stdout); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
